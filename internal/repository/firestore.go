package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ugc-studio/internal/config"
	"ugc-studio/internal/model"
)

// NewFirebaseApp initializes the Firebase app. Without a credentials file the
// Google application default credentials are used.
func NewFirebaseApp(ctx context.Context, cfg config.FirebaseConfig) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app for project '%s': %w", cfg.ProjectID, err)
	}
	return app, nil
}

// FirestoreStore is the Firestore-backed Store.
type FirestoreStore struct {
	client *firestore.Client
	logger *zap.Logger
	now    func() time.Time
}

func NewFirestoreStore(ctx context.Context, app *firebase.App, logger *zap.Logger) (*FirestoreStore, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}
	return &FirestoreStore{client: client, logger: logger.Named("FirestoreStore"), now: time.Now}, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// --- helpers ---

func mapFirestoreError(err error, collection, id string) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: %s/%s", model.ErrNotFound, collection, id)
	}
	return fmt.Errorf("firestore %s/%s: %w", collection, id, err)
}

func getDoc[T any](ctx context.Context, client *firestore.Client, collection, id string) (*T, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", model.ErrNotFound)
	}
	snap, err := client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapFirestoreError(err, collection, id)
	}
	var v T
	if err := snap.DataTo(&v); err != nil {
		return nil, fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
	}
	return &v, nil
}

func listDocs[T any](ctx context.Context, q firestore.Query, collection string, setID func(*T, string)) ([]T, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	items := make([]T, 0, len(snaps))
	for _, snap := range snaps {
		var v T
		if err := snap.DataTo(&v); err != nil {
			return nil, fmt.Errorf("failed to decode %s/%s: %w", collection, snap.Ref.ID, err)
		}
		setID(&v, snap.Ref.ID)
		items = append(items, v)
	}
	return items, nil
}

// byOwner filters by owner field when set, otherwise orders the whole
// collection by createdAt. Filtered lists are sorted in memory so no
// composite index is required.
func (s *FirestoreStore) byOwner(collection, ownerField, owner string) firestore.Query {
	col := s.client.Collection(collection)
	if owner == "" {
		return col.OrderBy("createdAt", firestore.Desc)
	}
	return col.Where(ownerField, "==", owner)
}

func (s *FirestoreStore) update(ctx context.Context, collection, id string, fields Fields, touch bool) error {
	if len(fields) == 0 && !touch {
		return nil
	}
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	if touch {
		updates = append(updates, firestore.Update{Path: "updatedAt", Value: s.now().UTC()})
	}
	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		return mapFirestoreError(err, collection, id)
	}
	return nil
}

func (s *FirestoreStore) delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists); err != nil {
		return mapFirestoreError(err, collection, id)
	}
	return nil
}

func (s *FirestoreStore) create(ctx context.Context, collection string, id string, data any) error {
	if _, err := s.client.Collection(collection).Doc(id).Create(ctx, data); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("%w: %s/%s already exists", model.ErrInvalidInput, collection, id)
		}
		return fmt.Errorf("failed to create %s/%s: %w", collection, id, err)
	}
	s.logger.Debug("Document created", zap.String("collection", collection), zap.String("id", id))
	return nil
}

func newestFirst[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool { return createdAt(items[i]).After(createdAt(items[j])) })
}

// --- brands ---

func (s *FirestoreStore) CreateBrand(ctx context.Context, brand *model.Brand) error {
	now := s.now().UTC()
	brand.ID = uuid.NewString()
	brand.CreatedAt, brand.UpdatedAt = now, now
	return s.create(ctx, CollectionBrands, brand.ID, brand)
}

func (s *FirestoreStore) GetBrand(ctx context.Context, id string) (*model.Brand, error) {
	brand, err := getDoc[model.Brand](ctx, s.client, CollectionBrands, id)
	if err != nil {
		return nil, err
	}
	brand.ID = id
	return brand, nil
}

func (s *FirestoreStore) ListBrands(ctx context.Context) ([]model.Brand, error) {
	q := s.client.Collection(CollectionBrands).OrderBy("createdAt", firestore.Desc)
	return listDocs(ctx, q, CollectionBrands, func(b *model.Brand, id string) { b.ID = id })
}

func (s *FirestoreStore) UpdateBrand(ctx context.Context, id string, fields Fields) error {
	return s.update(ctx, CollectionBrands, id, fields, true)
}

func (s *FirestoreStore) DeleteBrand(ctx context.Context, id string) error {
	return s.delete(ctx, CollectionBrands, id)
}

// --- analysis ---

func (s *FirestoreStore) SaveAnalysis(ctx context.Context, analysis *model.BrandAnalysis) error {
	if analysis.BrandID == "" {
		return fmt.Errorf("%w: analysis without brand id", model.ErrInvalidInput)
	}
	now := s.now().UTC()
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = now
	}
	analysis.UpdatedAt = now
	if _, err := s.client.Collection(CollectionAnalysis).Doc(analysis.BrandID).Set(ctx, analysis); err != nil {
		return fmt.Errorf("failed to save analysis for brand %s: %w", analysis.BrandID, err)
	}
	return nil
}

func (s *FirestoreStore) GetAnalysis(ctx context.Context, brandID string) (*model.BrandAnalysis, error) {
	return getDoc[model.BrandAnalysis](ctx, s.client, CollectionAnalysis, brandID)
}

func (s *FirestoreStore) DeleteAnalysis(ctx context.Context, brandID string) error {
	return s.delete(ctx, CollectionAnalysis, brandID)
}

// --- ideas ---

func (s *FirestoreStore) CreateIdea(ctx context.Context, idea *model.Idea) error {
	now := s.now().UTC()
	if idea.ID == "" {
		idea.ID = uuid.NewString()
	}
	idea.CreatedAt, idea.UpdatedAt = now, now
	return s.create(ctx, CollectionIdeas, idea.ID, idea)
}

func (s *FirestoreStore) GetIdea(ctx context.Context, id string) (*model.Idea, error) {
	idea, err := getDoc[model.Idea](ctx, s.client, CollectionIdeas, id)
	if err != nil {
		return nil, err
	}
	idea.ID = id
	return idea, nil
}

func (s *FirestoreStore) ListIdeas(ctx context.Context, brandID string) ([]model.Idea, error) {
	ideas, err := listDocs(ctx, s.byOwner(CollectionIdeas, "brandId", brandID), CollectionIdeas,
		func(i *model.Idea, id string) { i.ID = id })
	if err != nil {
		return nil, err
	}
	newestFirst(ideas, func(i model.Idea) time.Time { return i.CreatedAt })
	return ideas, nil
}

func (s *FirestoreStore) UpdateIdea(ctx context.Context, id string, fields Fields) error {
	return s.update(ctx, CollectionIdeas, id, fields, true)
}

func (s *FirestoreStore) DeleteIdea(ctx context.Context, id string) error {
	return s.delete(ctx, CollectionIdeas, id)
}

// --- scripts ---

func (s *FirestoreStore) CreateScript(ctx context.Context, script *model.Script) error {
	now := s.now().UTC()
	script.ID = uuid.NewString()
	script.CreatedAt, script.UpdatedAt = now, now
	return s.create(ctx, CollectionScripts, script.ID, script)
}

func (s *FirestoreStore) GetScript(ctx context.Context, id string) (*model.Script, error) {
	script, err := getDoc[model.Script](ctx, s.client, CollectionScripts, id)
	if err != nil {
		return nil, err
	}
	script.ID = id
	return script, nil
}

func (s *FirestoreStore) ListScripts(ctx context.Context, brandID string) ([]model.Script, error) {
	scripts, err := listDocs(ctx, s.byOwner(CollectionScripts, "brandId", brandID), CollectionScripts,
		func(sc *model.Script, id string) { sc.ID = id })
	if err != nil {
		return nil, err
	}
	newestFirst(scripts, func(sc model.Script) time.Time { return sc.CreatedAt })
	return scripts, nil
}

func (s *FirestoreStore) UpdateScript(ctx context.Context, id string, fields Fields) error {
	return s.update(ctx, CollectionScripts, id, fields, true)
}

func (s *FirestoreStore) DeleteScript(ctx context.Context, id string) error {
	return s.delete(ctx, CollectionScripts, id)
}

// --- media ---

func (s *FirestoreStore) CreateMedia(ctx context.Context, media *model.GeneratedMedia) error {
	if media.ScriptID == "" {
		return fmt.Errorf("%w: media without script id", model.ErrInvalidInput)
	}
	media.ID = uuid.NewString()
	media.CreatedAt = s.now().UTC()
	return s.create(ctx, CollectionMedia, media.ID, media)
}

func (s *FirestoreStore) ListMedia(ctx context.Context, scriptID string) ([]model.GeneratedMedia, error) {
	q := s.client.Collection(CollectionMedia).Where("scriptId", "==", scriptID)
	items, err := listDocs(ctx, q, CollectionMedia, func(m *model.GeneratedMedia, id string) { m.ID = id })
	if err != nil {
		return nil, err
	}
	SortMedia(items)
	return items, nil
}

func (s *FirestoreStore) DeleteMedia(ctx context.Context, id string) error {
	return s.delete(ctx, CollectionMedia, id)
}

// SortMedia orders media by shot index, then creation time.
func SortMedia(items []model.GeneratedMedia) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Index != items[j].Index {
			return items[i].Index < items[j].Index
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

// IsNotFound reports whether err is a missing-document error.
func IsNotFound(err error) bool {
	return errors.Is(err, model.ErrNotFound)
}
