package sandbox

import (
	"fmt"
	"io"
	"net/http"

	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req types.TemplateCreate
	if err := decodeBody(r, &req); err != nil {
		fail(w, err)
		return
	}
	tpl, err := newTemplate(req)
	if err != nil {
		fail(w, err)
		return
	}

	templates, err := s.store.Templates()
	if err != nil {
		fail(w, err)
		return
	}
	if err := templates.Create(r.Context(), tpl); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tpl)
}

// newTemplate validates a creation request and assigns field and option ids.
func newTemplate(req types.TemplateCreate) (*types.MetadataTemplate, error) {
	if req.Scope != types.ScopeEnterprise && req.Scope != types.ScopeGlobal {
		return nil, badRequest("scope must be enterprise or global")
	}
	if req.DisplayName == "" {
		return nil, badRequest("displayName is required")
	}
	key := req.TemplateKey
	if key == "" {
		key = deriveTemplateKey(req.DisplayName)
	}
	if key == "" {
		return nil, badRequest("templateKey could not be derived from displayName")
	}

	tpl := &types.MetadataTemplate{
		Scope:                  req.Scope,
		TemplateKey:            key,
		DisplayName:            req.DisplayName,
		Hidden:                 req.Hidden,
		CopyInstanceOnItemCopy: req.CopyInstanceOnItemCopy,
		Fields:                 []types.TemplateField{},
	}
	for _, f := range req.Fields {
		if err := applyOp(tpl, types.AddField{DisplayName: f.DisplayName, Key: f.Key, Hidden: f.Hidden, Type: f.Type}); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		added := &tpl.Fields[len(tpl.Fields)-1]
		added.Description = f.Description
		for _, o := range f.Options {
			if err := applyOp(tpl, types.AddEnumOption{FieldKey: f.Key, OptionKey: o.Key}); err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Key, err)
			}
		}
	}
	return tpl, nil
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	templates, err := s.store.Templates()
	if err != nil {
		fail(w, err)
		return
	}
	tpl, err := templates.Get(r.Context(), r.PathValue("scope"), r.PathValue("key"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

// updateTemplate applies a JSON array of operations atomically.
func (s *Server) updateTemplate(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		fail(w, err)
		return
	}
	ops, err := types.DecodeTemplateOps(b)
	if err != nil {
		fail(w, err)
		return
	}

	templates, err := s.store.Templates()
	if err != nil {
		fail(w, err)
		return
	}
	tpl, err := templates.Update(r.Context(), r.PathValue("scope"), r.PathValue("key"), func(tpl *types.MetadataTemplate) error {
		return ApplyOps(tpl, ops)
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	templates, err := s.store.Templates()
	if err != nil {
		fail(w, err)
		return
	}
	if err := templates.Delete(r.Context(), r.PathValue("scope"), r.PathValue("key")); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
