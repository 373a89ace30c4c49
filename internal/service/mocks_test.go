package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/service/llm"
	"inkwell/internal/service/prompt"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxManager runs the function directly; the fakes have no
// transaction semantics to enforce.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

type fakeDocRepo struct {
	docs     map[string]*models.Document
	versions map[string][]models.DocumentVersion
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{
		docs:     make(map[string]*models.Document),
		versions: make(map[string][]models.DocumentVersion),
	}
}

func (r *fakeDocRepo) add(doc *models.Document) *models.Document {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	r.docs[doc.ID] = doc
	return doc
}

func (r *fakeDocRepo) Create(ctx context.Context, doc *models.Document) error {
	doc.ID = uuid.New().String()
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocRepo) GetByID(ctx context.Context, id string) (*models.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "document not found"}
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeDocRepo) List(ctx context.Context) ([]models.Document, error) {
	out := make([]models.Document, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDocRepo) ListRecent(ctx context.Context, limit int, nonDraftOnly bool) ([]models.Document, error) {
	var out []models.Document
	for _, d := range r.docs {
		if nonDraftOnly && (d.IsDraft || d.Content == "") {
			continue
		}
		out = append(out, *d)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeDocRepo) Update(ctx context.Context, doc *models.Document) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return &domain.NotFoundError{Message: "document not found"}
	}
	copied := *doc
	r.docs[doc.ID] = &copied
	return nil
}

func (r *fakeDocRepo) Delete(ctx context.Context, id string) error {
	delete(r.docs, id)
	return nil
}

func (r *fakeDocRepo) CreateVersion(ctx context.Context, documentID, content string) error {
	next := len(r.versions[documentID]) + 1
	r.versions[documentID] = append(r.versions[documentID], models.DocumentVersion{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		Content:    content,
		Version:    next,
	})
	return nil
}

func (r *fakeDocRepo) ListVersions(ctx context.Context, documentID string, limit int) ([]models.DocumentVersion, error) {
	vs := r.versions[documentID]
	out := make([]models.DocumentVersion, len(vs))
	copy(out, vs)
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeFolderRepo struct {
	folders []models.Folder
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	folder.ID = uuid.New().String()
	r.folders = append(r.folders, *folder)
	return nil
}

func (r *fakeFolderRepo) List(ctx context.Context) ([]models.Folder, error) {
	return append([]models.Folder(nil), r.folders...), nil
}

type fakeFormatRepo struct {
	formats []models.Format
}

func (r *fakeFormatRepo) Create(ctx context.Context, format *models.Format) error {
	format.ID = uuid.New().String()
	for i := range format.PostingRules {
		format.PostingRules[i].ID = uuid.New().String()
		format.PostingRules[i].FormatID = format.ID
	}
	r.formats = append(r.formats, *format)
	return nil
}

func (r *fakeFormatRepo) GetByID(ctx context.Context, id string) (*models.Format, error) {
	for i := range r.formats {
		if r.formats[i].ID == id {
			copied := r.formats[i]
			return &copied, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "format not found"}
}

func (r *fakeFormatRepo) List(ctx context.Context) ([]models.Format, error) {
	return append([]models.Format(nil), r.formats...), nil
}

func (r *fakeFormatRepo) Update(ctx context.Context, format *models.Format) error {
	for i := range r.formats {
		if r.formats[i].ID == format.ID {
			r.formats[i] = *format
			return nil
		}
	}
	return &domain.NotFoundError{Message: "format not found"}
}

func (r *fakeFormatRepo) Delete(ctx context.Context, id string) error {
	for i := range r.formats {
		if r.formats[i].ID == id {
			r.formats = append(r.formats[:i], r.formats[i+1:]...)
			return nil
		}
	}
	return &domain.NotFoundError{Message: "format not found"}
}

type fakeVariantRepo struct {
	mu       sync.Mutex
	variants []models.GeneratedVariant
}

func (r *fakeVariantRepo) Create(ctx context.Context, v *models.GeneratedVariant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v.ID = uuid.New().String()
	if v.Status == "" {
		v.Status = models.VariantStatusPending
	}
	r.variants = append(r.variants, *v)
	return nil
}

func (r *fakeVariantRepo) GetByID(ctx context.Context, id string) (*models.GeneratedVariant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.variants {
		if r.variants[i].ID == id {
			copied := r.variants[i]
			return &copied, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "variant not found"}
}

func (r *fakeVariantRepo) GetByDocumentAndFormat(ctx context.Context, documentID, formatID string) (*models.GeneratedVariant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.variants {
		if r.variants[i].DocumentID == documentID && r.variants[i].FormatID == formatID {
			copied := r.variants[i]
			return &copied, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "variant not found"}
}

func (r *fakeVariantRepo) ListByDocument(ctx context.Context, documentID string) ([]models.GeneratedVariant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.GeneratedVariant
	for _, v := range r.variants {
		if v.DocumentID == documentID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVariantRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.variants[:0]
	for _, v := range r.variants {
		if v.DocumentID != documentID {
			kept = append(kept, v)
		}
	}
	r.variants = kept
	return nil
}

func (r *fakeVariantRepo) Update(ctx context.Context, v *models.GeneratedVariant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.variants {
		if r.variants[i].ID == v.ID {
			r.variants[i] = *v
			return nil
		}
	}
	return &domain.NotFoundError{Message: "variant not found"}
}

type fakeFeedbackRepo struct {
	entries []models.FormatFeedback
}

func (r *fakeFeedbackRepo) Create(ctx context.Context, fb *models.FormatFeedback) error {
	fb.ID = uuid.New().String()
	r.entries = append(r.entries, *fb)
	return nil
}

func (r *fakeFeedbackRepo) ListRecentByFormat(ctx context.Context, formatID string, limit int) ([]models.FormatFeedback, error) {
	var out []models.FormatFeedback
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].FormatID == formatID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

type fakeCalendarRepo struct {
	posts []models.CalendarPost
}

func (r *fakeCalendarRepo) Create(ctx context.Context, post *models.CalendarPost) error {
	post.ID = uuid.New().String()
	r.posts = append(r.posts, *post)
	return nil
}

func (r *fakeCalendarRepo) List(ctx context.Context) ([]models.CalendarPost, error) {
	return append([]models.CalendarPost(nil), r.posts...), nil
}

func (r *fakeCalendarRepo) Update(ctx context.Context, post *models.CalendarPost) error {
	for i := range r.posts {
		if r.posts[i].ID == post.ID {
			r.posts[i] = *post
			return nil
		}
	}
	return &domain.NotFoundError{Message: "calendar post not found"}
}

func (r *fakeCalendarRepo) GetByID(ctx context.Context, id string) (*models.CalendarPost, error) {
	for i := range r.posts {
		if r.posts[i].ID == id {
			copied := r.posts[i]
			return &copied, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "calendar post not found"}
}

type fakeContextRepo struct {
	docs []models.ContextDocument
}

func (r *fakeContextRepo) Create(ctx context.Context, doc *models.ContextDocument) error {
	doc.ID = uuid.New().String()
	r.docs = append(r.docs, *doc)
	return nil
}

func (r *fakeContextRepo) GetByID(ctx context.Context, id string) (*models.ContextDocument, error) {
	for i := range r.docs {
		if r.docs[i].ID == id {
			copied := r.docs[i]
			return &copied, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "context document not found"}
}

func (r *fakeContextRepo) ListRecent(ctx context.Context, limit int) ([]models.ContextDocument, error) {
	out := append([]models.ContextDocument(nil), r.docs...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeContextRepo) ListByFilenames(ctx context.Context, filenames []string) ([]models.ContextDocument, error) {
	want := make(map[string]bool, len(filenames))
	for _, f := range filenames {
		want[f] = true
	}
	var out []models.ContextDocument
	for _, d := range r.docs {
		if want[d.Filename] {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeContextRepo) ListMetadata(ctx context.Context) ([]models.ContextDocument, error) {
	return append([]models.ContextDocument(nil), r.docs...), nil
}

func (r *fakeContextRepo) Delete(ctx context.Context, id string) error {
	for i := range r.docs {
		if r.docs[i].ID == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return nil
		}
	}
	return &domain.NotFoundError{Message: "context document not found"}
}

type fakeIkigaiRepo struct {
	record *models.Ikigai
}

func (r *fakeIkigaiRepo) Get(ctx context.Context) (*models.Ikigai, error) {
	if r.record == nil {
		return nil, &domain.NotFoundError{Message: "ikigai not set"}
	}
	copied := *r.record
	return &copied, nil
}

func (r *fakeIkigaiRepo) Upsert(ctx context.Context, ikigai *models.Ikigai) error {
	copied := *ikigai
	r.record = &copied
	return nil
}

func testAggregator(ikigaiRepo *fakeIkigaiRepo, contextRepo *fakeContextRepo, feedbackRepo *fakeFeedbackRepo) *prompt.Aggregator {
	return prompt.NewAggregator(ikigaiRepo, contextRepo, feedbackRepo, testLogger())
}

// scriptedProvider fails or answers per prompt, for partial-failure
// tests where CannedProvider is too uniform.
type scriptedProvider struct {
	mu       sync.Mutex
	respond  func(req *llm.CompletionRequest) (string, error)
	requests []llm.CompletionRequest
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Complete(ctx context.Context, req *llm.CompletionRequest) (string, error) {
	p.mu.Lock()
	p.requests = append(p.requests, *req)
	p.mu.Unlock()
	return p.respond(req)
}
