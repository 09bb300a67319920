package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/auth"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/imports"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/session"
)

// maxSheetSize caps uploaded workbooks at 5 MiB.
const maxSheetSize = 5 << 20

type ImportHandler struct {
	Sessions *session.Manager
	Store    *imports.PreviewStore
}

func NewImportHandler(s *session.Manager, store *imports.PreviewStore) *ImportHandler {
	return &ImportHandler{Sessions: s, Store: store}
}

func importKind(r *http.Request) (imports.Kind, bool) {
	k := imports.Kind(r.PathValue("kind"))
	return k, k.Valid()
}

// Page: GET /imports/{kind} – upload form, plus the pending preview table
// when one exists for this session.
func (h *ImportHandler) Page(w http.ResponseWriter, r *http.Request) {
	kind, ok := importKind(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	sessionID, _ := auth.SessionIDFromContext(r.Context())
	preview, _ := h.Store.Get(sessionID, kind)

	renderTemplate(w, r, "imports/index", withFlash(w, r, map[string]any{
		"Kind":    string(kind),
		"Preview": preview,
	}))
}

// Upload: POST /imports/{kind} – parse the workbook into a preview.
// Nothing reaches the backend yet; a malformed file leaves any previous
// preview untouched.
func (h *ImportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	kind, ok := importKind(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := "/imports/" + string(kind)

	if err := r.ParseMultipartForm(maxSheetSize); err != nil {
		setFlash(w, "invalid upload, the file must be under 5 MB")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	file, header, err := r.FormFile("sheet")
	if err != nil {
		setFlash(w, "choose a spreadsheet to upload")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	defer file.Close()

	rows, err := imports.ParseSheet(file)
	if err != nil {
		setFlash(w, err.Error())
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	preview := buildPreview(kind, header.Filename, rows)
	sessionID, _ := auth.SessionIDFromContext(r.Context())
	h.Store.Put(sessionID, preview, rows)
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// buildPreview renders rows into display cells in a stable column order.
func buildPreview(kind imports.Kind, fileName string, rows []imports.Row) *imports.Preview {
	p := &imports.Preview{Kind: kind, FileName: fileName, ParsedAt: time.Now()}
	for _, row := range rows {
		headers := make([]string, 0, len(row))
		for h := range row {
			headers = append(headers, h)
		}
		sort.Strings(headers)
		cells := make([]string, 0, len(headers))
		for _, h := range headers {
			cells = append(cells, row[h])
		}
		rp := imports.RowPreview{Cells: cells}
		switch kind {
		case imports.KindStudents:
			p.Students = append(p.Students, rp)
		case imports.KindTeachers:
			p.Teachers = append(p.Teachers, rp)
		default:
			p.Products = append(p.Products, rp)
		}
	}
	return p
}

// Confirm: POST /imports/{kind}/confirm – submit the whole batch. On
// failure the preview is kept so the user can retry without re-uploading.
func (h *ImportHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	kind, ok := importKind(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := "/imports/" + string(kind)
	sessionID, _ := auth.SessionIDFromContext(r.Context())
	preview, rows := h.Store.Get(sessionID, kind)
	if preview == nil {
		setFlash(w, "nothing to import, upload a file first")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	client := h.Sessions.Client(r)
	var err error
	switch kind {
	case imports.KindStudents:
		err = client.BulkCreateStudents(r.Context(), imports.StudentRows(rows))
	case imports.KindTeachers:
		err = client.BulkCreateTeachers(r.Context(), imports.TeacherRows(rows))
	default:
		err = client.BulkCreateProducts(r.Context(), imports.ProductRows(rows))
	}
	if err != nil {
		setFlash(w, errMessage(err))
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	h.Store.Delete(sessionID, kind)
	setFlash(w, "import complete")
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// Cancel: POST /imports/{kind}/cancel – discard the pending preview.
func (h *ImportHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	kind, ok := importKind(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	sessionID, _ := auth.SessionIDFromContext(r.Context())
	h.Store.Delete(sessionID, kind)
	http.Redirect(w, r, "/imports/"+string(kind), http.StatusSeeOther)
}
