package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"SafeCampus/internal/feed"
	"SafeCampus/internal/model"
	"SafeCampus/internal/pkg"
)

// memPosts is an in-memory whole-document post store.
type memPosts struct {
	posts  map[uint64]*model.Post
	nextID uint64
}

func newMemPosts() *memPosts {
	return &memPosts{posts: map[uint64]*model.Post{}, nextID: 1}
}

func (m *memPosts) Create(ctx context.Context, post *model.Post) error {
	post.ID = m.nextID
	m.nextID++
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *memPosts) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPosts) Save(ctx context.Context, post *model.Post) error {
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *memPosts) Delete(ctx context.Context, id uint64) error {
	delete(m.posts, id)
	return nil
}

func (m *memPosts) ListByAuthor(ctx context.Context, authorID uint64) ([]model.Post, error) {
	var out []model.Post
	for _, p := range m.posts {
		if p.AuthorID == authorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memPosts) ListAll(ctx context.Context) ([]model.Post, error) {
	var out []model.Post
	for _, p := range m.posts {
		out = append(out, *p)
	}
	return out, nil
}

func newTestPostService() (*PostService, *memPosts) {
	posts := newMemPosts()
	graph := newMemGraph()
	users := &memUsers{users: map[uint64]*model.User{
		1: {ID: 1, Firstname: "Ada", Lastname: "Lovelace", PostVisibility: model.VisibilityEveryone},
		2: {ID: 2, Firstname: "Alan", Lastname: "Turing", PostVisibility: model.VisibilityFollowers},
	}}
	return &PostService{
		repo:  posts,
		users: users,
		feed:  feed.NewAssembler(posts, graph),
	}, posts
}

func TestCreatePostDefaultsToAuthorTier(t *testing.T) {
	svc, _ := newTestPostService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 2, "hello", nil, "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.Visibility != model.VisibilityFollowers {
		t.Errorf("visibility = %q; want the author's default %q", post.Visibility, model.VisibilityFollowers)
	}

	post, err = svc.CreatePost(ctx, 2, "hello", nil, model.VisibilityMe)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.Visibility != model.VisibilityMe {
		t.Errorf("visibility = %q; want explicit %q", post.Visibility, model.VisibilityMe)
	}
}

func TestCreatePostRequiresContent(t *testing.T) {
	svc, _ := newTestPostService()

	_, err := svc.CreatePost(context.Background(), 1, "", nil, "")
	if err == nil || kindOf(t, err) != pkg.KindValidation {
		t.Errorf("CreatePost with no content = %v; want validation error", err)
	}
}

func TestUpdatePostOwnerOnly(t *testing.T) {
	svc, _ := newTestPostService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, "original", nil, "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	_, err = svc.UpdatePost(ctx, 2, post.ID, "hijacked", nil, "")
	if err == nil || kindOf(t, err) != pkg.KindPolicy {
		t.Errorf("UpdatePost by non-owner = %v; want policy error", err)
	}

	updated, err := svc.UpdatePost(ctx, 1, post.ID, "edited", nil, model.VisibilityMe)
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if updated.Message != "edited" || updated.Visibility != model.VisibilityMe {
		t.Errorf("updated post = %+v; want edited message and me tier", updated)
	}
}

func TestHideOwnPostRejected(t *testing.T) {
	svc, _ := newTestPostService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, "mine", nil, "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	err = svc.HidePost(ctx, 1, post.ID)
	if err == nil || kindOf(t, err) != pkg.KindPolicy {
		t.Errorf("HidePost on own post = %v; want policy error", err)
	}
}

func TestHidePostRemovesFromViewerFeed(t *testing.T) {
	svc, _ := newTestPostService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, "public", nil, "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	before, err := svc.Feed(ctx, 2)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(before) != 1 {
		t.Fatalf("feed before hide has %d posts; want 1", len(before))
	}

	if err := svc.HidePost(ctx, 2, post.ID); err != nil {
		t.Fatalf("HidePost: %v", err)
	}
	// hiding twice is a no-op
	if err := svc.HidePost(ctx, 2, post.ID); err != nil {
		t.Fatalf("second HidePost: %v", err)
	}

	after, err := svc.Feed(ctx, 2)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(after) != 0 {
		t.Errorf("feed after hide has %d posts; want 0", len(after))
	}

	// the author still sees it
	own, err := svc.Feed(ctx, 1)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(own) != 1 {
		t.Errorf("author feed has %d posts; want 1", len(own))
	}
}

func TestTogglePostLikeTwiceRestores(t *testing.T) {
	svc, store := newTestPostService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, "likeable", nil, "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	liked, err := svc.TogglePostLike(ctx, 2, post.ID)
	if err != nil {
		t.Fatalf("TogglePostLike: %v", err)
	}
	if !liked.Likes.Has(2) {
		t.Error("like not recorded after first toggle")
	}

	unliked, err := svc.TogglePostLike(ctx, 2, post.ID)
	if err != nil {
		t.Fatalf("TogglePostLike: %v", err)
	}
	if unliked.Likes.Has(2) {
		t.Error("like still present after second toggle")
	}

	stored, _ := store.FindByID(ctx, post.ID)
	if len(stored.Likes) != 0 {
		t.Errorf("stored likes = %v; want empty", stored.Likes)
	}
}

func TestToggleLikesUnknownViewer(t *testing.T) {
	svc, _ := newTestPostService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, "likeable", nil, "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	post, err = svc.AddComment(ctx, 2, post.ID, "nice")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	commentID := post.Comments[0].ID

	if _, err := svc.TogglePostLike(ctx, 99, post.ID); err == nil || kindOf(t, err) != pkg.KindNotFound {
		t.Errorf("TogglePostLike by unknown viewer = %v; want not-found error", err)
	}
	if _, err := svc.ToggleCommentLike(ctx, 99, post.ID, commentID); err == nil || kindOf(t, err) != pkg.KindNotFound {
		t.Errorf("ToggleCommentLike by unknown viewer = %v; want not-found error", err)
	}
	if _, err := svc.ToggleReplyLike(ctx, 99, post.ID, commentID, "r1"); err == nil || kindOf(t, err) != pkg.KindNotFound {
		t.Errorf("ToggleReplyLike by unknown viewer = %v; want not-found error", err)
	}
}

func TestCommentAndReplyThread(t *testing.T) {
	svc, _ := newTestPostService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, "discuss", nil, "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	post, err = svc.AddComment(ctx, 2, post.ID, "first!")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if len(post.Comments) != 1 || post.Comments[0].ID == "" {
		t.Fatalf("comments = %+v; want one comment with an id", post.Comments)
	}
	commentID := post.Comments[0].ID

	post, err = svc.AddReply(ctx, 1, post.ID, commentID, "thanks")
	if err != nil {
		t.Fatalf("AddReply: %v", err)
	}
	replies := post.Comment(commentID).Replies
	if len(replies) != 1 {
		t.Fatalf("replies = %+v; want one", replies)
	}
	quoted := replies[0].RepliedComment
	if quoted == nil || quoted.Message != "first!" || quoted.Firstname != "Alan" {
		t.Errorf("quoted comment = %+v; want snapshot of Alan's comment", quoted)
	}
}

func TestAddReplyMissingComment(t *testing.T) {
	svc, _ := newTestPostService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, "quiet", nil, "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	_, err = svc.AddReply(ctx, 1, post.ID, "no-such-comment", "hello")
	if err == nil || kindOf(t, err) != pkg.KindNotFound {
		t.Errorf("AddReply to missing comment = %v; want not-found error", err)
	}
}

func TestToggleCommentLike(t *testing.T) {
	svc, _ := newTestPostService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, "discuss", nil, "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	post, err = svc.AddComment(ctx, 2, post.ID, "nice")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	commentID := post.Comments[0].ID

	post, err = svc.ToggleCommentLike(ctx, 1, post.ID, commentID)
	if err != nil {
		t.Fatalf("ToggleCommentLike: %v", err)
	}
	if !post.Comment(commentID).Likes.Has(1) {
		t.Error("comment like not recorded")
	}

	_, err = svc.ToggleCommentLike(ctx, 1, post.ID, "bogus")
	if err == nil || kindOf(t, err) != pkg.KindNotFound {
		t.Errorf("ToggleCommentLike on missing comment = %v; want not-found error", err)
	}
}

func TestFeedUnknownViewer(t *testing.T) {
	svc, _ := newTestPostService()

	_, err := svc.Feed(context.Background(), 99)
	if err == nil || kindOf(t, err) != pkg.KindNotFound {
		t.Errorf("Feed for unknown viewer = %v; want not-found error", err)
	}
}
