package feed

import "SafeCampus/internal/model"

// CanView decides whether viewerID may see post. viewerFollowing is the set
// of account ids the viewer follows.
//
// A post is visible when any of these holds:
//   - the tier is "everyone"
//   - the viewer is the author (any tier)
//   - the tier is "followers" and the viewer follows the author
//
// Hiding is a viewer-local veto: an id on the post's hide-list never sees the
// post, whatever the tier says.
func CanView(viewerID uint64, post *model.Post, viewerFollowing model.IDSet) bool {
	if post.HiddenTo.Has(viewerID) {
		return false
	}

	switch post.Visibility {
	case model.VisibilityEveryone:
		return true
	case model.VisibilityMe:
		return viewerID == post.AuthorID
	case model.VisibilityFollowers:
		return viewerID == post.AuthorID || viewerFollowing.Has(post.AuthorID)
	}
	return false
}
