package service

import (
	"bookclub/internal/models"
)

// assembleReplyTrees turns a post's flat, created-at-ordered reply rows into
// per-comment trees. The returned map is keyed by comment id and holds each
// comment's direct replies with their subtrees attached.
//
// Rows are processed newest-first so every node's subtree is complete before
// the node itself is hooked onto its parent; a reply always postdates its
// parent. Orphaned rows whose parent is missing are dropped.
func assembleReplyTrees(replies []models.Reply) map[uint][]models.Reply {
	byID := make(map[uint]*models.Reply, len(replies))
	for i := range replies {
		byID[replies[i].ID] = &replies[i]
	}

	for i := len(replies) - 1; i >= 0; i-- {
		r := &replies[i]
		if r.ParentReplyID == nil {
			continue
		}
		parent, ok := byID[*r.ParentReplyID]
		if !ok {
			continue
		}
		// Prepend to preserve ascending creation order under each parent.
		parent.Replies = append([]models.Reply{*r}, parent.Replies...)
	}

	roots := make(map[uint][]models.Reply)
	for i := range replies {
		r := &replies[i]
		if r.ParentReplyID == nil {
			roots[r.CommentID] = append(roots[r.CommentID], *byID[r.ID])
		}
	}
	return roots
}

// findReply walks every comment's reply tree depth-first with an explicit
// stack, returning the reply with the given id or nil. Traversal order is
// deterministic at any nesting depth and never recurses.
func findReply(comments []models.Comment, replyID uint) *models.Reply {
	for ci := range comments {
		stack := make([]*models.Reply, 0, len(comments[ci].Replies))
		for ri := len(comments[ci].Replies) - 1; ri >= 0; ri-- {
			stack = append(stack, &comments[ci].Replies[ri])
		}
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if node.ID == replyID {
				return node
			}
			for ri := len(node.Replies) - 1; ri >= 0; ri-- {
				stack = append(stack, &node.Replies[ri])
			}
		}
	}
	return nil
}

// collectReplySubtree returns the ids of a reply and every descendant,
// walking the flat parent links with an explicit stack.
func collectReplySubtree(replies []models.Reply, rootID uint) []uint {
	children := make(map[uint][]uint, len(replies))
	for i := range replies {
		if p := replies[i].ParentReplyID; p != nil {
			children[*p] = append(children[*p], replies[i].ID)
		}
	}

	ids := make([]uint, 0, 1)
	stack := []uint{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ids = append(ids, id)
		stack = append(stack, children[id]...)
	}
	return ids
}

// snippet shortens a title for embedding in notification text. Truncation
// counts runes so a multibyte character is never split.
func snippet(title string) string {
	const max = titleSnippetLen
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max]) + "..."
}
