package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"SafeCampus/internal/feed"
	"SafeCampus/internal/model"
	"SafeCampus/internal/pkg"
	"SafeCampus/internal/repository/mysql"
)

// PostStore is the whole-document post store: every mutation loads the post,
// edits it in memory and persists it back in one Save.
type PostStore interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint64) (*model.Post, error)
	Save(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uint64) error
	ListByAuthor(ctx context.Context, authorID uint64) ([]model.Post, error)
	ListAll(ctx context.Context) ([]model.Post, error)
}

type PostService struct {
	repo  PostStore
	users UserReader
	feed  *feed.Assembler
}

func NewPostService() *PostService {
	posts := &mysql.PostRepository{DB: mysql.DB}
	graph := &mysql.FollowRepository{DB: mysql.DB}
	return &PostService{
		repo:  posts,
		users: &mysql.UserRepository{DB: mysql.DB},
		feed:  feed.NewAssembler(posts, graph),
	}
}

func (s *PostService) findUser(ctx context.Context, id uint64) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("account not found")
		}
		return nil, pkg.Internal(err)
	}
	return user, nil
}

func (s *PostService) findPost(ctx context.Context, id uint64) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("post not found")
		}
		return nil, pkg.Internal(err)
	}
	return post, nil
}

// CreatePost creates a post for authorID. An empty visibility falls back to
// the author's configured default tier.
func (s *PostService) CreatePost(ctx context.Context, authorID uint64, message string, images []string, visibility model.Visibility) (*model.Post, error) {
	if message == "" && len(images) == 0 {
		return nil, pkg.Invalid("message or image is required")
	}
	if len(message) > model.MaxPostMessage {
		return nil, pkg.Invalid("message is too long")
	}

	author, err := s.findUser(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if visibility == "" {
		visibility = author.PostVisibility
	}
	if !visibility.Valid() {
		return nil, pkg.Invalid("invalid visibility option")
	}

	post := &model.Post{
		AuthorID:   authorID,
		Message:    message,
		Images:     images,
		Visibility: visibility,
		Likes:      model.IDSet{},
		HiddenTo:   model.IDSet{},
		Comments:   []model.Comment{},
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, pkg.Internal(err)
	}
	return post, nil
}

// UpdatePost lets the owner change message, images or tier.
func (s *PostService) UpdatePost(ctx context.Context, userID, postID uint64, message string, images []string, visibility model.Visibility) (*model.Post, error) {
	if message == "" && len(images) == 0 && visibility == "" {
		return nil, pkg.Invalid("nothing to update")
	}
	if len(message) > model.MaxPostMessage {
		return nil, pkg.Invalid("message is too long")
	}

	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, pkg.Policy("you can only update your own post")
	}

	if message != "" {
		post.Message = message
	}
	if len(images) > 0 {
		post.Images = images
	}
	if visibility != "" {
		if !visibility.Valid() {
			return nil, pkg.Invalid("invalid visibility option")
		}
		post.Visibility = visibility
	}

	if err := s.repo.Save(ctx, post); err != nil {
		return nil, pkg.Internal(err)
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return pkg.Policy("you can only delete your own post")
	}
	if err := s.repo.Delete(ctx, postID); err != nil {
		return pkg.Internal(err)
	}
	return nil
}

// HidePost puts the viewer on the post's hide-list. Hiding is viewer-local:
// the post stays visible to everyone else.
func (s *PostService) HidePost(ctx context.Context, viewerID, postID uint64) error {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID == viewerID {
		return pkg.Policy("you cannot hide your own post")
	}
	if !post.HiddenTo.Add(viewerID) {
		return nil
	}
	if err := s.repo.Save(ctx, post); err != nil {
		return pkg.Internal(err)
	}
	return nil
}

// TogglePostLike likes the post if the viewer hasn't, unlikes otherwise.
func (s *PostService) TogglePostLike(ctx context.Context, viewerID, postID uint64) (*model.Post, error) {
	if _, err := s.findUser(ctx, viewerID); err != nil {
		return nil, err
	}
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Likes.Toggle(viewerID)
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, pkg.Internal(err)
	}
	return post, nil
}

func (s *PostService) AddComment(ctx context.Context, userID, postID uint64, message string) (*model.Post, error) {
	if message == "" {
		return nil, pkg.Invalid("message is required")
	}
	if len(message) > model.MaxPostMessage {
		return nil, pkg.Invalid("message is too long")
	}
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.Comments = append(post.Comments, model.Comment{
		ID:        uuid.NewString(),
		AuthorID:  userID,
		Message:   message,
		Likes:     model.IDSet{},
		Replies:   []model.Reply{},
		CreatedAt: time.Now().UTC(),
	})
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, pkg.Internal(err)
	}
	return post, nil
}

func (s *PostService) GetComments(ctx context.Context, postID uint64) (*model.Post, error) {
	return s.findPost(ctx, postID)
}

// AddReply appends a reply to a comment, with a denormalized snapshot of the
// replied comment so the thread still renders if the author changes later.
func (s *PostService) AddReply(ctx context.Context, userID, postID uint64, commentID, message string) (*model.Post, error) {
	if message == "" {
		return nil, pkg.Invalid("message is required")
	}
	if len(message) > model.MaxPostMessage {
		return nil, pkg.Invalid("message is too long")
	}
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	comment := post.Comment(commentID)
	if comment == nil {
		return nil, pkg.NotFound("comment not found")
	}

	quoted := &model.QuotedComment{Message: comment.Message}
	if author, err := s.users.FindByID(ctx, comment.AuthorID); err == nil {
		quoted.Firstname = author.Firstname
		quoted.Lastname = author.Lastname
	}

	comment.Replies = append(comment.Replies, model.Reply{
		ID:             uuid.NewString(),
		AuthorID:       userID,
		Message:        message,
		RepliedComment: quoted,
		Likes:          model.IDSet{},
		CreatedAt:      time.Now().UTC(),
	})
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, pkg.Internal(err)
	}
	return post, nil
}

func (s *PostService) ToggleCommentLike(ctx context.Context, viewerID, postID uint64, commentID string) (*model.Post, error) {
	if _, err := s.findUser(ctx, viewerID); err != nil {
		return nil, err
	}
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	comment := post.Comment(commentID)
	if comment == nil {
		return nil, pkg.NotFound("comment not found")
	}
	comment.Likes.Toggle(viewerID)
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, pkg.Internal(err)
	}
	return post, nil
}

func (s *PostService) ToggleReplyLike(ctx context.Context, viewerID, postID uint64, commentID, replyID string) (*model.Post, error) {
	if _, err := s.findUser(ctx, viewerID); err != nil {
		return nil, err
	}
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	comment := post.Comment(commentID)
	if comment == nil {
		return nil, pkg.NotFound("comment not found")
	}
	reply := comment.Reply(replyID)
	if reply == nil {
		return nil, pkg.NotFound("reply not found")
	}
	reply.Likes.Toggle(viewerID)
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, pkg.Internal(err)
	}
	return post, nil
}

// Feed is the global feed for the viewer, filtered by visibility and the
// viewer's hide choices, newest first.
func (s *PostService) Feed(ctx context.Context, viewerID uint64) ([]model.Post, error) {
	if _, err := s.findUser(ctx, viewerID); err != nil {
		return nil, err
	}
	posts, err := s.feed.GlobalFeed(ctx, viewerID)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	return posts, nil
}

// ProfileFeed is ownerID's posts as seen by viewerID.
func (s *PostService) ProfileFeed(ctx context.Context, viewerID, ownerID uint64) ([]model.Post, error) {
	if _, err := s.findUser(ctx, viewerID); err != nil {
		return nil, err
	}
	if viewerID != ownerID {
		if _, err := s.findUser(ctx, ownerID); err != nil {
			return nil, err
		}
	}
	posts, err := s.feed.ProfileFeed(ctx, viewerID, ownerID)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	return posts, nil
}

// Timeline is the viewer's own posts plus those of everyone they follow.
func (s *PostService) Timeline(ctx context.Context, viewerID uint64) ([]model.Post, error) {
	if _, err := s.findUser(ctx, viewerID); err != nil {
		return nil, err
	}
	posts, err := s.feed.Timeline(ctx, viewerID)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	return posts, nil
}
