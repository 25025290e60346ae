package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"personal_diary/internal/models"
	"personal_diary/internal/service"

	"github.com/gin-gonic/gin"
)

// diaryPage is the data shared by the authenticated templates: the acting
// user, the sidebar listing and whatever the main pane needs.
type diaryPage struct {
	Username    string
	Entries     []models.EntryPreview
	Entry       *models.Entry
	Today       string
	SavedCount  int
	EntryID     int
	Message     string
	MessageType string
}

// sidebarEntries loads the acting user's listing for the sidebar. Failures
// degrade to an empty sidebar rather than an error page.
func (h *Handler) sidebarEntries(c *gin.Context, ident service.Identity) []models.EntryPreview {
	entries, err := h.services.Entries.List(c.Request.Context(), ident.UserID)
	if err != nil {
		h.log.Errorw("list_entries_failed", "err", err, "user_id", ident.UserID)
		return nil
	}
	return entries
}

// photoUploads pulls the multipart "photos" field. A request without a
// multipart body simply has no uploads.
func photoUploads(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["photos"]
}

// pathID parses the :id path segment. ok is false for anything non-numeric.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) listEntries(c *gin.Context) {
	ident := identityFrom(c)
	c.HTML(http.StatusOK, "home", diaryPage{
		Username: ident.Username,
		Entries:  h.sidebarEntries(c, ident),
	})
}

func (h *Handler) newEntry(c *gin.Context) {
	ident := identityFrom(c)
	c.HTML(http.StatusOK, "entry_new", diaryPage{
		Username: ident.Username,
		Entries:  h.sidebarEntries(c, ident),
		Today:    time.Now().Format("2006-01-02"),
	})
}

func (h *Handler) saveEntry(c *gin.Context) {
	ident := identityFrom(c)
	date := c.PostForm("date")
	content := c.PostForm("content")

	entryID, saved, err := h.services.Entries.Create(c.Request.Context(), ident.UserID, date, content, photoUploads(c))
	if err != nil {
		msg := "Could not save entry"
		if errors.Is(err, service.ErrDateRequired) {
			msg = "Date is required"
		} else {
			h.log.Errorw("save_entry_failed", "err", err, "user_id", ident.UserID)
		}
		c.HTML(http.StatusOK, "entry_new", diaryPage{
			Username:    ident.Username,
			Entries:     h.sidebarEntries(c, ident),
			Today:       time.Now().Format("2006-01-02"),
			Message:     msg,
			MessageType: msgTypeError,
		})
		return
	}

	c.HTML(http.StatusOK, "entry_saved", diaryPage{
		Username:   ident.Username,
		Entries:    h.sidebarEntries(c, ident),
		SavedCount: saved,
		EntryID:    entryID,
	})
}

func (h *Handler) viewEntry(c *gin.Context) {
	ident := identityFrom(c)
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	entry, err := h.services.Entries.Get(c.Request.Context(), id, ident.UserID)
	if err != nil {
		// Missing and foreign entries land here together; nothing to tell apart.
		if !errors.Is(err, service.ErrNotFound) {
			h.log.Errorw("view_entry_failed", "err", err, "entry_id", id)
		}
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "entry_view", diaryPage{
		Username: ident.Username,
		Entries:  h.sidebarEntries(c, ident),
		Entry:    entry,
	})
}

func (h *Handler) editEntry(c *gin.Context) {
	ident := identityFrom(c)
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	entry, err := h.services.Entries.Get(c.Request.Context(), id, ident.UserID)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			h.log.Errorw("edit_entry_failed", "err", err, "entry_id", id)
		}
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "entry_edit", diaryPage{
		Username: ident.Username,
		Entries:  h.sidebarEntries(c, ident),
		Entry:    entry,
	})
}

func (h *Handler) updateEntry(c *gin.Context) {
	ident := identityFrom(c)
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	_, err := h.services.Entries.Update(c.Request.Context(), id, ident.UserID,
		c.PostForm("date"), c.PostForm("content"), photoUploads(c))
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) && !errors.Is(err, service.ErrDateRequired) {
			h.log.Errorw("update_entry_failed", "err", err, "entry_id", id)
		}
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.Redirect(http.StatusFound, "/view/"+strconv.Itoa(id))
}

func (h *Handler) deleteEntry(c *gin.Context) {
	ident := identityFrom(c)
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/entries")
		return
	}

	// Deleting a missing or foreign entry redirects exactly like a real
	// delete; the store is untouched either way.
	if err := h.services.Entries.Delete(c.Request.Context(), id, ident.UserID); err != nil {
		h.log.Errorw("delete_entry_failed", "err", err, "entry_id", id)
	}
	c.Redirect(http.StatusFound, "/entries")
}

func (h *Handler) serveUpload(c *gin.Context) {
	path, err := h.store.Path(c.Param("filename"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(path)
}
