package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blognest-backend/internal/config"
	"blognest-backend/internal/domains/post"
	"blognest-backend/internal/session"
)

// fakeRepo is an in-memory post.Repository. It reproduces the store's
// observable contract (ordering, partial merge, not-found errors) but
// deliberately does NOT enforce slug uniqueness on write, matching a
// backend without a unique index.
type fakeRepo struct {
	mu    sync.Mutex
	posts map[uuid.UUID]post.Post

	// beforeCreate runs outside the lock, after uniqueness probes.
	// Lets tests interleave concurrent creates.
	beforeCreate func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{posts: make(map[uuid.UUID]post.Post)}
}

func (r *fakeRepo) Create(_ context.Context, p *post.Post) (*post.Post, error) {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *p
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.posts[stored.ID] = stored
	return &stored, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	return &p, nil
}

func (r *fakeRepo) GetBySlug(_ context.Context, slug string) (*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.posts {
		if p.Slug != "" && p.Slug == slug {
			match := p
			return &match, nil
		}
	}
	return nil, post.ErrPostNotFound
}

func (r *fakeRepo) List(_ context.Context, f post.Filter) ([]post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]post.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if f.PublishedOnly && p.Status != post.StatusPublished {
			continue
		}
		if f.AuthorID != "" && p.AuthorID != f.AuthorID {
			continue
		}
		if f.Tag != "" && !containsTag(p.Tags, f.Tag) {
			continue
		}
		all = append(all, p)
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID.String() > all[j].ID.String()
	})

	if f.Cursor != nil {
		after := make([]post.Post, 0, len(all))
		for _, p := range all {
			if p.CreatedAt.Before(f.Cursor.CreatedAt) ||
				(p.CreatedAt.Equal(f.Cursor.CreatedAt) && p.ID.String() < f.Cursor.ID.String()) {
				after = append(after, p)
			}
		}
		all = after
	}

	if f.Limit > 0 && len(all) > f.Limit {
		all = all[:f.Limit]
	}
	return all, nil
}

func (r *fakeRepo) UpdatePartial(_ context.Context, id uuid.UUID, patch *post.Patch) (*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.ContentHTML != nil {
		p.ContentHTML = *patch.ContentHTML
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	if patch.Status != nil {
		p.Status = post.Status(*patch.Status)
	}
	if patch.CoverURL != nil {
		p.CoverURL = *patch.CoverURL
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	p.UpdatedAt = time.Now()
	r.posts[id] = p
	return &p, nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return post.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakeRepo) ExistsBySlug(_ context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.posts {
		if p.ID != excludeID && p.Slug != "" && p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) PublishedTags(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{})
	for _, p := range r.posts {
		if p.Status != post.StatusPublished {
			continue
		}
		for _, tag := range p.Tags {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

func containsTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

func testConfig() *config.Config {
	return &config.Config{
		Site: config.SiteConfig{PostsPerPage: 10},
		Content: config.ContentConfig{
			MaxTitleLength: 120,
			MaxTagLength:   16,
			MaxTagCount:    10,
			ExcerptLength:  160,
			WordsPerMinute: 200,
		},
	}
}

func newTestService(repo post.Repository, uid string, admins []string) post.Service {
	sess := session.NewEstablished(&session.Identity{UID: uid}, admins)
	return NewPostService(repo, sess, testConfig())
}

func str(s string) *string { return &s }

func createPost(t *testing.T, svc post.Service, title, slug string) *post.Post {
	t.Helper()
	patch := &post.Patch{Title: str(title), ContentHTML: str("<p>body</p>")}
	if slug != "" {
		patch.Slug = str(slug)
	}
	created, err := svc.Create(context.Background(), patch)
	require.NoError(t, err)
	return created
}

func TestCreateDefaultsToDraft(t *testing.T) {
	svc := newTestService(newFakeRepo(), "admin-1", []string{"admin-1"})

	created := createPost(t, svc, "First", "")
	assert.Equal(t, post.StatusDraft, created.Status)
	assert.Equal(t, "admin-1", created.AuthorID)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NotNil(t, created.Tags)
}

func TestCreateRequiresAdmin(t *testing.T) {
	svc := newTestService(newFakeRepo(), "visitor", []string{"admin-1"})

	_, err := svc.Create(context.Background(), &post.Patch{
		Title: str("x"), ContentHTML: str("y"),
	})
	assert.ErrorIs(t, err, session.ErrForbidden)
}

func TestCreateUnauthenticated(t *testing.T) {
	sess := session.NewEstablished(nil, []string{"admin-1"})
	svc := NewPostService(newFakeRepo(), sess, testConfig())

	_, err := svc.Create(context.Background(), &post.Patch{
		Title: str("x"), ContentHTML: str("y"),
	})
	assert.ErrorIs(t, err, session.ErrUnauthenticated)
}

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	svc := newTestService(newFakeRepo(), "admin-1", []string{"admin-1"})

	created := createPost(t, svc, "Hello, World!  Test_123", "")
	assert.Equal(t, "hello-world-test-123", created.Slug)
}

func TestCreateDerivedSlugConflictLeavesPostSlugless(t *testing.T) {
	svc := newTestService(newFakeRepo(), "admin-1", []string{"admin-1"})

	first := createPost(t, svc, "Same Title", "")
	require.Equal(t, "same-title", first.Slug)

	// A derived candidate that is taken is dropped, not an error.
	second := createPost(t, svc, "Same Title", "")
	assert.Equal(t, "", second.Slug)
}

func TestCreateExplicitEmptySlugSkipsDerivation(t *testing.T) {
	svc := newTestService(newFakeRepo(), "admin-1", []string{"admin-1"})

	created, err := svc.Create(context.Background(), &post.Patch{
		Title:       str("No Slug Please"),
		ContentHTML: str("<p>b</p>"),
		Slug:        str(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "", created.Slug)
}

func TestCreateSlugConflict(t *testing.T) {
	svc := newTestService(newFakeRepo(), "admin-1", []string{"admin-1"})

	createPost(t, svc, "First", "shared-slug")

	_, err := svc.Create(context.Background(), &post.Patch{
		Title: str("Second"), ContentHTML: str("<p>b</p>"), Slug: str("shared-slug"),
	})
	assert.ErrorIs(t, err, post.ErrSlugConflict)
}

func TestCreateSlugFreedByDelete(t *testing.T) {
	svc := newTestService(newFakeRepo(), "admin-1", []string{"admin-1"})

	first := createPost(t, svc, "First", "shared-slug")
	require.NoError(t, svc.Delete(context.Background(), first.ID.String()))

	second := createPost(t, svc, "Second", "shared-slug")
	assert.Equal(t, "shared-slug", second.Slug)
}

// Probe-then-write is not atomic: two writers that both pass the
// uniqueness probe before either persists will both succeed, and the
// store ends up with a duplicate slug. The production backend's
// partial unique index closes this hole; the in-memory store shows
// the behavior without it.
func TestCreateSlugRaceBothPassProbe(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "admin-1", []string{"admin-1"})

	barrier := make(chan struct{})
	var wg sync.WaitGroup
	repo.beforeCreate = func() {
		// Rendezvous: neither writer persists until both have probed.
		select {
		case barrier <- struct{}{}:
		case <-barrier:
		}
	}

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), &post.Patch{
				Title: str("Racing"), ContentHTML: str("<p>b</p>"), Slug: str("raced"),
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 2, succeeded, "both writers pass the probe before either write lands")

	matches := 0
	repo.mu.Lock()
	for _, p := range repo.posts {
		if p.Slug == "raced" {
			matches++
		}
	}
	repo.mu.Unlock()
	assert.Equal(t, 2, matches)
}

func TestGetByIDOrSlug(t *testing.T) {
	svc := newTestService(newFakeRepo(), "admin-1", []string{"admin-1"})
	created := createPost(t, svc, "Findable", "findable")

	byID, err := svc.GetByIDOrSlug(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	bySlug, err := svc.GetByIDOrSlug(context.Background(), "findable")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = svc.GetByIDOrSlug(context.Background(), "no-such-post")
	assert.ErrorIs(t, err, post.ErrPostNotFound)

	_, err = svc.GetByIDOrSlug(context.Background(), "")
	assert.ErrorIs(t, err, post.ErrPostNotFound)
}

func TestUpdateOwnershipAndMerge(t *testing.T) {
	repo := newFakeRepo()
	owner := newTestService(repo, "admin-1", []string{"admin-1", "admin-2"})
	other := newTestService(repo, "admin-2", []string{"admin-1", "admin-2"})

	created := createPost(t, owner, "Original", "original")

	_, err := other.Update(context.Background(), created.ID.String(), &post.Patch{
		Title: str("Hijacked"),
	})
	assert.ErrorIs(t, err, post.ErrNotOwner)

	updated, err := owner.Update(context.Background(), created.ID.String(), &post.Patch{
		Title: str("Renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "<p>body</p>", updated.ContentHTML, "absent fields stay unchanged")
	assert.Equal(t, "original", updated.Slug)
}

func TestUpdateSlugConflictExcludesSelf(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "admin-1", []string{"admin-1"})

	a := createPost(t, svc, "A", "slug-a")
	createPost(t, svc, "B", "slug-b")

	// Re-sending its own slug is not a conflict.
	_, err := svc.Update(context.Background(), a.ID.String(), &post.Patch{Slug: str("slug-a")})
	require.NoError(t, err)

	// Taking another post's slug is.
	_, err = svc.Update(context.Background(), a.ID.String(), &post.Patch{Slug: str("slug-b")})
	assert.ErrorIs(t, err, post.ErrSlugConflict)
}

func TestPublishUnpublish(t *testing.T) {
	svc := newTestService(newFakeRepo(), "admin-1", []string{"admin-1"})
	created := createPost(t, svc, "Lifecycle", "")

	published, err := svc.Publish(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, post.StatusPublished, published.Status)

	drafted, err := svc.Unpublish(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, post.StatusDraft, drafted.Status)
}

func TestDelete(t *testing.T) {
	repo := newFakeRepo()
	owner := newTestService(repo, "admin-1", []string{"admin-1", "admin-2"})
	other := newTestService(repo, "admin-2", []string{"admin-1", "admin-2"})

	created := createPost(t, owner, "Doomed", "doomed")

	err := other.Delete(context.Background(), created.ID.String())
	assert.ErrorIs(t, err, post.ErrNotOwner)

	require.NoError(t, owner.Delete(context.Background(), created.ID.String()))

	err = owner.Delete(context.Background(), created.ID.String())
	assert.ErrorIs(t, err, post.ErrPostNotFound)
}

func TestListPublishedFiltersAndPaginates(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "admin-1", []string{"admin-1"})

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		p := post.Post{
			ID:          uuid.New(),
			Title:       "P",
			ContentHTML: "<p>b</p>",
			Tags:        []string{"go"},
			Status:      post.StatusPublished,
			AuthorID:    "admin-1",
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
			UpdatedAt:   base,
		}
		repo.posts[p.ID] = p
	}
	draft := post.Post{
		ID: uuid.New(), Title: "D", ContentHTML: "x",
		Status: post.StatusDraft, AuthorID: "admin-1",
		CreatedAt: base.Add(10 * time.Hour),
	}
	repo.posts[draft.ID] = draft

	page1, next, err := svc.ListPublished(context.Background(), post.ListQuery{Limit: 3})
	require.NoError(t, err)
	require.Len(t, page1, 3)
	require.NotEmpty(t, next, "full page carries a next cursor")
	for _, p := range page1 {
		assert.Equal(t, post.StatusPublished, p.Status)
	}
	assert.True(t, page1[0].CreatedAt.After(page1[1].CreatedAt))

	page2, next2, err := svc.ListPublished(context.Background(), post.ListQuery{Limit: 3, Cursor: next})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Empty(t, next2, "short page ends pagination")
	assert.True(t, page1[2].CreatedAt.After(page2[0].CreatedAt))
}

func TestListPublishedByTag(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "admin-1", []string{"admin-1"})

	for _, tags := range [][]string{{"go"}, {"web"}, {"go", "web"}} {
		p := post.Post{
			ID: uuid.New(), Title: "P", ContentHTML: "x",
			Tags: tags, Status: post.StatusPublished, AuthorID: "admin-1",
			CreatedAt: time.Now(),
		}
		repo.posts[p.ID] = p
	}

	got, _, err := svc.ListPublished(context.Background(), post.ListQuery{Tag: "go"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListPublishedRejectsBadCursor(t *testing.T) {
	svc := newTestService(newFakeRepo(), "admin-1", []string{"admin-1"})

	_, _, err := svc.ListPublished(context.Background(), post.ListQuery{Cursor: "!!bogus!!"})
	assert.ErrorIs(t, err, post.ErrInvalidCursor)
}

func TestListMineIncludesDrafts(t *testing.T) {
	repo := newFakeRepo()
	mine := newTestService(repo, "admin-1", []string{"admin-1", "admin-2"})
	theirs := newTestService(repo, "admin-2", []string{"admin-1", "admin-2"})

	createPost(t, mine, "Mine Draft", "")
	createPost(t, theirs, "Theirs", "")

	got, _, err := mine.ListMine(context.Background(), post.ListQuery{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Mine Draft", got[0].Title)
	assert.Equal(t, post.StatusDraft, got[0].Status)
}

func TestAllTags(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, "admin-1", []string{"admin-1"})

	published := post.Post{
		ID: uuid.New(), Title: "P", ContentHTML: "x",
		Tags: []string{"web", "go"}, Status: post.StatusPublished,
		AuthorID: "admin-1", CreatedAt: time.Now(),
	}
	draft := post.Post{
		ID: uuid.New(), Title: "D", ContentHTML: "x",
		Tags: []string{"secret"}, Status: post.StatusDraft,
		AuthorID: "admin-1", CreatedAt: time.Now(),
	}
	repo.posts[published.ID] = published
	repo.posts[draft.ID] = draft

	tags, err := svc.AllTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "web"}, tags, "sorted, published only")
}
