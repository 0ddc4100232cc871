package feed

import (
	"context"
	"sort"

	"SafeCampus/internal/model"
)

// PostSource is the read side of the post store.
type PostSource interface {
	ListAll(ctx context.Context) ([]model.Post, error)
	ListByAuthor(ctx context.Context, authorID uint64) ([]model.Post, error)
}

// GraphSource exposes the viewer's side of the social graph.
type GraphSource interface {
	FollowingIDs(ctx context.Context, userID uint64) ([]uint64, error)
}

// Assembler composes feed result sets from the post store and the social
// graph. All methods are pure reads.
type Assembler struct {
	posts PostSource
	graph GraphSource
}

func NewAssembler(posts PostSource, graph GraphSource) *Assembler {
	return &Assembler{posts: posts, graph: graph}
}

// GlobalFeed returns every post the viewer may see, newest first.
func (a *Assembler) GlobalFeed(ctx context.Context, viewerID uint64) ([]model.Post, error) {
	candidates, err := a.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	following, err := a.following(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	out := make([]model.Post, 0, len(candidates))
	for i := range candidates {
		if CanView(viewerID, &candidates[i], following) {
			out = append(out, candidates[i])
		}
	}
	sortRecent(out)
	return out, nil
}

// ProfileFeed returns ownerID's posts as seen by viewerID, newest first.
// An owner viewing their own profile sees every post, no visibility filter.
func (a *Assembler) ProfileFeed(ctx context.Context, viewerID, ownerID uint64) ([]model.Post, error) {
	candidates, err := a.posts.ListByAuthor(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if viewerID == ownerID {
		sortRecent(candidates)
		return candidates, nil
	}

	following, err := a.following(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Post, 0, len(candidates))
	for i := range candidates {
		if CanView(viewerID, &candidates[i], following) {
			out = append(out, candidates[i])
		}
	}
	sortRecent(out)
	return out, nil
}

// Timeline returns the viewer's own posts followed by the posts of every
// account they follow, in concatenation order.
//
// TODO: unlike GlobalFeed/ProfileFeed this applies neither the visibility
// filter nor the hide-list, matching the shipped behavior; confirm with
// product before tightening it.
func (a *Assembler) Timeline(ctx context.Context, viewerID uint64) ([]model.Post, error) {
	out, err := a.posts.ListByAuthor(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	following, err := a.following(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	for _, friendID := range following {
		posts, err := a.posts.ListByAuthor(ctx, friendID)
		if err != nil {
			return nil, err
		}
		out = append(out, posts...)
	}
	return out, nil
}

func (a *Assembler) following(ctx context.Context, viewerID uint64) (model.IDSet, error) {
	ids, err := a.graph.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return model.IDSet(ids), nil
}

// sortRecent orders posts newest first, id descending as tie-break.
func sortRecent(posts []model.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
