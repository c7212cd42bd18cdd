package sandbox

import (
	"net/http"

	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

// commentBody is the request body for creating or editing a comment.
type commentBody struct {
	Message       *string     `json:"message"`
	TaggedMessage *string     `json:"tagged_message"`
	Item          *types.Item `json:"item"`
}

// message returns the stored form of the body's message. The key sent by the
// client decides whether the message is tagged.
func (b commentBody) message() (types.Message, error) {
	switch {
	case b.TaggedMessage != nil:
		return types.Message{Text: *b.TaggedMessage, Tagged: true}, nil
	case b.Message != nil:
		return types.Message{Text: *b.Message}, nil
	default:
		return types.Message{}, badRequest("message or tagged_message is required")
	}
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	var body commentBody
	if err := decodeBody(r, &body); err != nil {
		fail(w, err)
		return
	}
	msg, err := body.message()
	if err != nil {
		fail(w, err)
		return
	}
	if body.Item == nil || body.Item.ID == "" {
		fail(w, badRequest("item with type and id is required"))
		return
	}
	if body.Item.Type != types.ItemTypeFile && body.Item.Type != types.ItemTypeComment {
		fail(w, badRequest("item type must be file or comment"))
		return
	}

	comments, err := s.store.Comments()
	if err != nil {
		fail(w, err)
		return
	}
	if body.Item.Type == types.ItemTypeComment {
		if _, err := comments.Get(r.Context(), body.Item.ID); err != nil {
			fail(w, err)
			return
		}
	}

	c, err := comments.Create(r.Context(), msg, *body.Item)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) getComment(w http.ResponseWriter, r *http.Request) {
	comments, err := s.store.Comments()
	if err != nil {
		fail(w, err)
		return
	}
	c, err := comments.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, err)
		return
	}
	out, err := selectFields(r, c)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) updateComment(w http.ResponseWriter, r *http.Request) {
	var body commentBody
	if err := decodeBody(r, &body); err != nil {
		fail(w, err)
		return
	}
	msg, err := body.message()
	if err != nil {
		fail(w, err)
		return
	}

	comments, err := s.store.Comments()
	if err != nil {
		fail(w, err)
		return
	}
	c, err := comments.UpdateMessage(r.Context(), r.PathValue("id"), msg)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	comments, err := s.store.Comments()
	if err != nil {
		fail(w, err)
		return
	}
	if err := comments.Delete(r.Context(), r.PathValue("id")); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
