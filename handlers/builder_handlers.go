package handlers

// Builder endpoints back the three editors: the field editor, the
// landing page composer and the story designer. Each request loads the
// form, applies one editor operation and persists only the sub-tree
// that operation touched.

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wrappedform/wrappedform/document"
	"github.com/wrappedform/wrappedform/store"
)

func saveFields(w http.ResponseWriter, r *http.Request, form *document.Form) bool {
	patch := store.FormPatch{Fields: &form.Fields}
	if err := store.Active.UpdateForm(r.Context(), form.ID, patch); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return false
	}
	return true
}

func saveLanding(w http.ResponseWriter, r *http.Request, form *document.Form) bool {
	patch := store.FormPatch{Landing: &form.Landing}
	if err := store.Active.UpdateForm(r.Context(), form.ID, patch); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return false
	}
	return true
}

func saveStory(w http.ResponseWriter, r *http.Request, form *document.Form) bool {
	patch := store.FormPatch{Story: &form.Story}
	if err := store.Active.UpdateForm(r.Context(), form.ID, patch); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return false
	}
	return true
}

// --- fields ---

func AddField(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}
	field := form.AddField()
	if !saveFields(w, r, form) {
		return
	}
	writeJSON(w, http.StatusCreated, field)
}

func UpdateField(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}

	var patch document.FieldPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fieldID := mux.Vars(r)["fieldID"]
	if !form.UpdateField(fieldID, patch) {
		http.Error(w, "Field not found", http.StatusNotFound)
		return
	}
	if !saveFields(w, r, form) {
		return
	}
	writeJSON(w, http.StatusOK, form.FindField(fieldID))
}

func DeleteField(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}
	if !form.RemoveField(mux.Vars(r)["fieldID"]) {
		http.Error(w, "Field not found", http.StatusNotFound)
		return
	}
	if !saveFields(w, r, form) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func MoveFieldOption(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}

	var req struct {
		Index     int                    `json:"index"`
		Direction document.MoveDirection `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fieldID := mux.Vars(r)["fieldID"]
	field := form.FindField(fieldID)
	if field == nil {
		http.Error(w, "Field not found", http.StatusNotFound)
		return
	}

	form.MoveOption(fieldID, req.Index, req.Direction)
	if !saveFields(w, r, form) {
		return
	}
	writeJSON(w, http.StatusOK, field)
}

// --- landing composer ---

func AddLandingBlock(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}

	var req struct {
		Type  document.BlockType `json:"type"`
		Index *int               `json:"index,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	composer := document.NewComposer(form)
	var block *document.LandingBlock
	if req.Index != nil {
		block = composer.AddBlock(req.Type, *req.Index)
	} else {
		block = composer.AppendBlock(req.Type)
	}
	if !saveLanding(w, r, form) {
		return
	}
	writeJSON(w, http.StatusCreated, block)
}

func UpdateLandingBlock(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}

	var req struct {
		document.BlockPatch
		Style *document.StylePatch `json:"style,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	blockID := mux.Vars(r)["blockID"]
	composer := document.NewComposer(form)
	if !composer.UpdateBlock(blockID, req.BlockPatch) {
		http.Error(w, "Block not found", http.StatusNotFound)
		return
	}
	if req.Style != nil {
		composer.UpdateBlockStyle(blockID, *req.Style)
	}
	if !saveLanding(w, r, form) {
		return
	}
	writeJSON(w, http.StatusOK, form.Landing)
}

func DeleteLandingBlock(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}
	composer := document.NewComposer(form)
	if !composer.RemoveBlock(mux.Vars(r)["blockID"]) {
		http.Error(w, "Block not found", http.StatusNotFound)
		return
	}
	if !saveLanding(w, r, form) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DropLandingBlock applies one drag-and-drop gesture: a palette drop
// inserts a fresh block, a block drop reorders. DropIndex of -1 means
// the drop landed on empty canvas.
func DropLandingBlock(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}

	var req struct {
		document.DragPayload
		DropIndex int `json:"dropIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	composer := document.NewComposer(form)
	if req.Kind == document.DragMove {
		composer.StartBlockDrag(req.SourceIndex)
	}
	if req.DropIndex < 0 {
		composer.DropOnCanvas(req.DragPayload)
	} else {
		composer.DropOnBlock(req.DragPayload, req.DropIndex)
	}
	if !saveLanding(w, r, form) {
		return
	}
	writeJSON(w, http.StatusOK, form.Landing)
}

// --- story designer ---

func AddStoryElement(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}

	var req struct {
		Type document.ElementType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	designer := document.NewDesigner(form)
	element := designer.AddElement(req.Type)
	if !saveStory(w, r, form) {
		return
	}
	writeJSON(w, http.StatusCreated, element)
}

func UpdateStoryElement(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}

	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	designer := document.NewDesigner(form)
	if !designer.UpdateElement(mux.Vars(r)["elementID"], updates) {
		http.Error(w, "Element not found", http.StatusNotFound)
		return
	}
	if !saveStory(w, r, form) {
		return
	}
	writeJSON(w, http.StatusOK, form.Story)
}

func DeleteStoryElement(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}
	designer := document.NewDesigner(form)
	if !designer.RemoveElement(mux.Vars(r)["elementID"]) {
		http.Error(w, "Element not found", http.StatusNotFound)
		return
	}
	if !saveStory(w, r, form) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PositionStoryElement moves an element to where a drag gesture ended.
// Pointer coordinates are in pixels and mapped to canvas percentages.
func PositionStoryElement(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}

	var req struct {
		PointerX float64               `json:"pointerX"`
		PointerY float64               `json:"pointerY"`
		Bounds   document.CanvasBounds `json:"bounds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	designer := document.NewDesigner(form)
	if !designer.BeginElementDrag(mux.Vars(r)["elementID"]) {
		http.Error(w, "Element not found", http.StatusNotFound)
		return
	}
	designer.DragTo(req.PointerX, req.PointerY, req.Bounds)
	designer.EndDrag()
	if !saveStory(w, r, form) {
		return
	}
	writeJSON(w, http.StatusOK, form.Story)
}

func SetStoryBackground(w http.ResponseWriter, r *http.Request) {
	form := loadOwnedForm(w, r)
	if form == nil {
		return
	}

	var req struct {
		Background string `json:"background"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	designer := document.NewDesigner(form)
	designer.SetBackground(req.Background)
	if !saveStory(w, r, form) {
		return
	}
	writeJSON(w, http.StatusOK, form.Story)
}
