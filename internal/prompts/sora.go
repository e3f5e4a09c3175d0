package prompts

import (
	"fmt"
	"math/rand"
	"strings"
)

// Building blocks of the 5-component video prompt.
const (
	ShotWide           = "wide shot"
	ShotMedium         = "medium shot"
	ShotCloseUp        = "close-up shot"
	ShotExtremeCloseUp = "extreme close-up"
	ShotSelfie         = "selfie-mode"

	CameraStatic   = "static camera"
	CameraHandheld = "handheld camera with slight natural shake"
	CameraDollyIn  = "slow dolly-in"
	CameraDollyOut = "slow dolly-out"
	CameraOrbit    = "orbit move around the subject"
	CameraTracking = "side-tracking shot"
	CameraPan      = "slow pan"
	CameraTilt     = "tilt up/down"

	EnvKitchen    = "bright modern kitchen"
	EnvLivingRoom = "cozy living room with warm light"
	EnvBedroom    = "clean, minimalist bedroom"
	EnvPark       = "sunny park with green grass"
	EnvOffice     = "home office setup"

	LightNatural    = "natural morning light streaming through a window"
	LightGoldenHour = "warm golden hour light"
	LightSoft       = "soft, diffused lighting"
	LightNight      = "ambient night lighting from streetlights"
	LightBacklight  = "backlit subject creating a silhouette effect"

	StyleRealistic = "ultra-realistic, hyper-detailed"
	StyleCinematic = "cinematic, sharp focus"
	StyleUGC       = "conversational UGC style, authentic, as if filmed on a phone"
)

// KeyVisualsUGC are the authenticity details mixed into each beat.
var KeyVisualsUGC = []string{
	"authentic TikTok vibe",
	"slightly shaky handheld camera",
	"unscripted feel",
	"natural speech patterns with brief pauses",
	"slight camera adjustment as if repositioning phone",
	"subtle lens flare",
	"focus on expressive face",
	"genuine surprise/excitement",
	"unfiltered authenticity",
}

// Transitions open every beat after the first in the offline script.
var Transitions = []string{"then", "suddenly", "next", "meanwhile", "right after", "moments later"}

// EmptyConceptMessage is returned by OfflineScript for a blank concept.
const EmptyConceptMessage = "Please provide a concept first."

// Beat is one shot of a script skeleton.
type Beat struct {
	Subject     string   `json:"subject"`
	Shot        string   `json:"shot"`
	Movement    string   `json:"movement"`
	Environment string   `json:"environment,omitempty"`
	Lighting    string   `json:"lighting,omitempty"`
	Details     []string `json:"details"`
}

func (b Beat) render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s, %s. %s.", b.Shot, b.Movement, strings.TrimSuffix(b.Subject, "."))
	if b.Environment != "" {
		fmt.Fprintf(&sb, " The scene is set in a %s", b.Environment)
		if b.Lighting != "" {
			fmt.Fprintf(&sb, " with %s", b.Lighting)
		}
		sb.WriteString(".")
	}
	if len(b.Details) > 0 {
		fmt.Fprintf(&sb, " Key details include %s.", strings.Join(b.Details, ", "))
	}
	return sb.String()
}

// Template is a predefined script skeleton.
type Template struct {
	Name    string `json:"name"`
	Concept string `json:"concept"`
	Beats   []Beat `json:"beats"`
}

// Templates are the built-in skeletons.
var Templates = []Template{
	{
		Name:    "Unboxing Template",
		Concept: "A user unboxes a product with excitement.",
		Beats: []Beat{
			{Subject: "A person holding a branded box, looking curious and excited.", Shot: ShotSelfie, Movement: CameraHandheld,
				Details: []string{"The brand logo is visible on the box", "The person shakes the box gently"}},
			{Subject: "The person opens the box, and their face lights up with joy.", Shot: ShotMedium, Movement: CameraDollyIn,
				Details: []string{"A bright light emanates from inside the box (optional)", "Genuine smile and wide eyes"}},
			{Subject: "A close-up of the product inside the box, looking pristine.", Shot: ShotCloseUp, Movement: CameraStatic,
				Details: []string{"The product is perfectly nestled in the packaging", "Shows key features of the product"}},
			{Subject: "The person takes the product out and shows it to the camera with a testimonial.", Shot: ShotSelfie, Movement: "handheld camera",
				Details: []string{"Person says \"I got this for a great price!\"", "Authentic, happy reaction"}},
		},
	},
	{
		Name:    "Product Demo Template",
		Concept: "A user demonstrates how a product solves a common problem.",
		Beats: []Beat{
			{Subject: "A person looking frustrated with a common problem (e.g., a tangled cable, a difficult-to-open jar).", Shot: ShotMedium, Movement: CameraStatic,
				Details: []string{"Exaggerated sigh or frown", "The environment is relatable (e.g., a messy desk)"}},
			{Subject: "The person introduces the product as the solution.", Shot: ShotSelfie, Movement: "handheld camera",
				Details: []string{"The person holds up the product with a hopeful expression", "Says \"I found the perfect solution!\""}},
			{Subject: "A close-up of the product in action, easily solving the problem.", Shot: ShotExtremeCloseUp, Movement: CameraPan,
				Details: []string{"Shows the product's innovative mechanism", "The action is smooth and satisfying"}},
			{Subject: "The person shows the successful result with a thumbs-up and a smile.", Shot: ShotMedium, Movement: "handheld camera",
				Details: []string{"The problem is clearly solved", "The person looks relieved and happy"}},
		},
	},
}

// FindTemplate looks a template up by name, case-insensitively. The
// " Template" suffix may be omitted: "unboxing" finds "Unboxing Template".
func FindTemplate(name string) (Template, bool) {
	name = strings.TrimSpace(name)
	for _, t := range Templates {
		if strings.EqualFold(t.Name, name) || strings.EqualFold(strings.TrimSuffix(t.Name, " Template"), name) {
			return t, true
		}
	}
	return Template{}, false
}

// OfflineScript builds a three-beat hook/action/reaction script without an AI
// call. rng picks the UGC details and transitions; nil uses the global source.
func OfflineScript(concept string, rng *rand.Rand) string {
	concept = strings.TrimSpace(concept)
	if concept == "" {
		return EmptyConceptMessage
	}
	pick := func(list []string) string {
		if rng != nil {
			return list[rng.Intn(len(list))]
		}
		return list[rand.Intn(len(list))]
	}

	beats := []Beat{
		{Subject: concept, Shot: ShotSelfie, Movement: CameraHandheld, Environment: EnvLivingRoom, Lighting: LightNatural,
			Details: []string{"eyes wide with genuine surprise", pick(KeyVisualsUGC)}},
		{Subject: "A close-up on the product details", Shot: ShotCloseUp, Movement: CameraStatic, Environment: "soft focus on background elements", Lighting: LightSoft,
			Details: []string{"shows the texture and quality", pick(KeyVisualsUGC)}},
		{Subject: "The person gives an authentic, joyful reaction", Shot: ShotMedium, Movement: CameraDollyOut, Environment: EnvLivingRoom, Lighting: LightNatural,
			Details: []string{"a happy dance or a hand over mouth in disbelief", pick(KeyVisualsUGC)}},
	}

	shots := make([]string, 0, len(beats))
	for i, beat := range beats {
		shot := beat.render()
		if i > 0 {
			shot = pick(Transitions) + ", " + shot
		}
		if i == len(beats)-1 {
			shot += fmt.Sprintf(" Finally, the overall result should be %s and %s.", StyleUGC, StyleRealistic)
		}
		shots = append(shots, strings.Join(strings.Fields(shot), " "))
	}
	return strings.Join(shots, " [cut] ")
}

// TemplateScript renders a template's beats joined by [cut].
func TemplateScript(t Template) string {
	parts := make([]string, 0, len(t.Beats))
	for _, beat := range t.Beats {
		parts = append(parts, beat.render())
	}
	return strings.Join(parts, " [cut] ")
}
