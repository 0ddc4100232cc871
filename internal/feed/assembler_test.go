package feed

import (
	"context"
	"testing"
	"time"

	"SafeCampus/internal/model"
)

type fakePosts struct {
	posts []model.Post
}

func (f *fakePosts) ListAll(ctx context.Context) ([]model.Post, error) {
	out := make([]model.Post, len(f.posts))
	copy(out, f.posts)
	return out, nil
}

func (f *fakePosts) ListByAuthor(ctx context.Context, authorID uint64) ([]model.Post, error) {
	var out []model.Post
	for _, p := range f.posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeGraph struct {
	following map[uint64][]uint64
}

func (f *fakeGraph) FollowingIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	return f.following[userID], nil
}

func at(min int) time.Time {
	return time.Date(2026, 3, 1, 12, min, 0, 0, time.UTC)
}

func ids(posts []model.Post) []uint64 {
	out := make([]uint64, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func equalIDs(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

const (
	alice = uint64(1)
	bob   = uint64(2)
	carol = uint64(3)
)

func testAssembler(following map[uint64][]uint64, posts ...model.Post) *Assembler {
	return NewAssembler(&fakePosts{posts: posts}, &fakeGraph{following: following})
}

func TestGlobalFeedFiltersAndOrders(t *testing.T) {
	a := testAssembler(
		map[uint64][]uint64{carol: {alice}},
		model.Post{ID: 1, AuthorID: alice, Visibility: model.VisibilityEveryone, CreatedAt: at(1)},
		model.Post{ID: 2, AuthorID: alice, Visibility: model.VisibilityFollowers, CreatedAt: at(2)},
		model.Post{ID: 3, AuthorID: alice, Visibility: model.VisibilityMe, CreatedAt: at(3)},
		model.Post{ID: 4, AuthorID: bob, Visibility: model.VisibilityEveryone, CreatedAt: at(4), HiddenTo: model.IDSet{carol}},
	)

	got, err := a.GlobalFeed(context.Background(), carol)
	if err != nil {
		t.Fatalf("GlobalFeed: %v", err)
	}
	// carol follows alice: sees 1 and 2 but not the "me" post, and 4 is hidden
	// from her. Newest first.
	if want := []uint64{2, 1}; !equalIDs(ids(got), want) {
		t.Errorf("feed for carol = %v; want %v", ids(got), want)
	}

	got, err = a.GlobalFeed(context.Background(), alice)
	if err != nil {
		t.Fatalf("GlobalFeed: %v", err)
	}
	// the author sees all her own posts plus bob's public one
	if want := []uint64{4, 3, 2, 1}; !equalIDs(ids(got), want) {
		t.Errorf("feed for alice = %v; want %v", ids(got), want)
	}
}

func TestGlobalFeedTieBreaksByID(t *testing.T) {
	a := testAssembler(nil,
		model.Post{ID: 1, AuthorID: alice, Visibility: model.VisibilityEveryone, CreatedAt: at(1)},
		model.Post{ID: 2, AuthorID: bob, Visibility: model.VisibilityEveryone, CreatedAt: at(1)},
	)

	got, err := a.GlobalFeed(context.Background(), carol)
	if err != nil {
		t.Fatalf("GlobalFeed: %v", err)
	}
	if want := []uint64{2, 1}; !equalIDs(ids(got), want) {
		t.Errorf("feed = %v; want %v", ids(got), want)
	}
}

func TestProfileFeedBeforeAndAfterFollow(t *testing.T) {
	posts := []model.Post{
		{ID: 1, AuthorID: alice, Visibility: model.VisibilityEveryone, CreatedAt: at(1)},
		{ID: 2, AuthorID: alice, Visibility: model.VisibilityFollowers, CreatedAt: at(2)},
		{ID: 3, AuthorID: alice, Visibility: model.VisibilityMe, CreatedAt: at(3)},
	}

	before := testAssembler(map[uint64][]uint64{}, posts...)
	got, err := before.ProfileFeed(context.Background(), bob, alice)
	if err != nil {
		t.Fatalf("ProfileFeed: %v", err)
	}
	if want := []uint64{1}; !equalIDs(ids(got), want) {
		t.Errorf("profile before follow = %v; want %v", ids(got), want)
	}

	after := testAssembler(map[uint64][]uint64{bob: {alice}}, posts...)
	got, err = after.ProfileFeed(context.Background(), bob, alice)
	if err != nil {
		t.Fatalf("ProfileFeed: %v", err)
	}
	if want := []uint64{2, 1}; !equalIDs(ids(got), want) {
		t.Errorf("profile after follow = %v; want %v", ids(got), want)
	}
}

func TestProfileFeedOwnerSeesEverything(t *testing.T) {
	a := testAssembler(nil,
		model.Post{ID: 1, AuthorID: alice, Visibility: model.VisibilityMe, CreatedAt: at(1)},
		model.Post{ID: 2, AuthorID: alice, Visibility: model.VisibilityFollowers, CreatedAt: at(2), HiddenTo: model.IDSet{alice}},
	)

	got, err := a.ProfileFeed(context.Background(), alice, alice)
	if err != nil {
		t.Fatalf("ProfileFeed: %v", err)
	}
	if want := []uint64{2, 1}; !equalIDs(ids(got), want) {
		t.Errorf("own profile = %v; want %v", ids(got), want)
	}
}

func TestTimelineConcatenatesOwnThenFollowed(t *testing.T) {
	a := testAssembler(
		map[uint64][]uint64{alice: {bob, carol}},
		model.Post{ID: 1, AuthorID: alice, Visibility: model.VisibilityEveryone, CreatedAt: at(1)},
		model.Post{ID: 2, AuthorID: bob, Visibility: model.VisibilityMe, CreatedAt: at(2)},
		model.Post{ID: 3, AuthorID: carol, Visibility: model.VisibilityEveryone, CreatedAt: at(3)},
		model.Post{ID: 4, AuthorID: 99, Visibility: model.VisibilityEveryone, CreatedAt: at(4)},
	)

	got, err := a.Timeline(context.Background(), alice)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	// own posts first, then each followed account in graph order; not filtered
	// and not re-sorted.
	if want := []uint64{1, 2, 3}; !equalIDs(ids(got), want) {
		t.Errorf("timeline = %v; want %v", ids(got), want)
	}
}
