package model

import "testing"

func TestIDSet(t *testing.T) {
	var s IDSet

	if s.Has(1) {
		t.Error("empty set should not contain 1")
	}
	if !s.Add(1) {
		t.Error("first Add(1) should report a change")
	}
	if s.Add(1) {
		t.Error("second Add(1) should be a no-op")
	}
	if !s.Has(1) {
		t.Error("set should contain 1 after Add")
	}
	if !s.Remove(1) {
		t.Error("Remove(1) should report a change")
	}
	if s.Remove(1) {
		t.Error("second Remove(1) should be a no-op")
	}
}

func TestIDSetToggleTwiceRestores(t *testing.T) {
	s := IDSet{1, 2, 3}

	if on := s.Toggle(2); on {
		t.Error("toggling a member should remove it")
	}
	if on := s.Toggle(2); !on {
		t.Error("toggling again should add it back")
	}
	if !s.Has(1) || !s.Has(2) || !s.Has(3) || len(s) != 3 {
		t.Errorf("set after double toggle = %v; want {1,2,3}", s)
	}
}

func TestPostCommentLookup(t *testing.T) {
	post := Post{
		Comments: []Comment{
			{ID: "c1", Message: "first"},
			{ID: "c2", Message: "second", Replies: []Reply{{ID: "r1"}}},
		},
	}

	if got := post.Comment("c2"); got == nil || got.Message != "second" {
		t.Fatalf("Comment(c2) = %+v; want the second comment", got)
	}
	if got := post.Comment("missing"); got != nil {
		t.Errorf("Comment(missing) = %+v; want nil", got)
	}

	c := post.Comment("c2")
	if got := c.Reply("r1"); got == nil {
		t.Error("Reply(r1) = nil; want the reply")
	}
	if got := c.Reply("r2"); got != nil {
		t.Errorf("Reply(r2) = %+v; want nil", got)
	}
}

func TestPostCommentReturnsAddressableElement(t *testing.T) {
	post := Post{Comments: []Comment{{ID: "c1"}}}

	post.Comment("c1").Likes.Toggle(7)
	if !post.Comments[0].Likes.Has(7) {
		t.Error("mutation through Comment() should be visible on the post")
	}
}
