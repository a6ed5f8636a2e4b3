package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	errs "lapor/internal/errors"
	"lapor/internal/model"
	"lapor/internal/store"
)

// SubmitReport constructs a new PENDING report owned by actor and
// applies it optimistically. When replaceID is given the referenced
// report is removed first; this is how a rejected report is fixed and
// resubmitted. Admins are notified of the new report, the submitter
// gets a confirmation.
func (e *Engine) SubmitReport(ctx context.Context, actor *model.User, draft model.ReportDraft, replaceID string) (model.Report, error) {
	if actor == nil {
		return model.Report{}, errs.ErrUserNotFound
	}

	rep := model.Report{
		ID:          uuid.NewString(),
		UserID:      actor.ID,
		UserName:    actor.Name,
		Category:    draft.Category,
		Description: draft.Description,
		ImageURL:    draft.ImageURL,
		Location:    draft.Location,
		Coordinates: draft.Coordinates,
		Status:      model.StatusPending,
		CreatedAt:   time.Now(),
	}

	e.do(func() {
		e.mu.Lock()
		if replaceID != "" {
			e.removeReportLocked(replaceID)
		}
		e.reports = append([]model.Report{rep}, e.reports...)
		online := e.reportMode == ModeOnline
		e.mu.Unlock()

		if online {
			go e.remoteSubmit(actor.ID, rep, replaceID)
		}
	})

	suffix := ""
	submitMsg := "Laporan berhasil dikirim!"
	if replaceID != "" {
		suffix = " (Perbaikan)"
		submitMsg = "Laporan berhasil diperbaiki & dikirim ulang!"
	}
	for _, admin := range e.admins() {
		e.notif.Push(admin.ID, fmt.Sprintf("Laporan baru dari %s: %s%s", actor.Name, rep.Category, suffix), model.NotifInfo)
	}
	e.notif.Push(actor.ID, submitMsg, model.NotifSuccess)

	return rep, nil
}

func (e *Engine) remoteSubmit(actorID string, rep model.Report, replaceID string) {
	// No cancellation for in-flight remote writes.
	ctx := context.Background()
	if replaceID != "" {
		if err := e.store.DeleteReport(ctx, replaceID); err != nil {
			e.notif.Push(actorID, "Gagal menghapus laporan lama dari database", model.NotifError)
		}
	}
	if err := e.store.InsertReport(ctx, &rep); err != nil {
		e.notif.Push(actorID, "Gagal menyimpan laporan ke database", model.NotifError)
	}
}

// ReviewReport writes the review outcome onto the report. Only
// ACCEPTED and REJECTED are legal here; rejection feedback is enforced
// by the caller. An unknown id is a no-op. The owner is notified of
// the outcome, the acting admin gets a confirmation.
func (e *Engine) ReviewReport(ctx context.Context, actor *model.User, id string, status model.ReportStatus, feedback string) error {
	if status != model.StatusAccepted && status != model.StatusRejected {
		return errs.ErrInvalidStatus
	}

	var prev model.Report
	found := false
	e.do(func() {
		e.mu.Lock()
		for i := range e.reports {
			if e.reports[i].ID == id {
				prev = e.reports[i]
				e.reports[i].Status = status
				e.reports[i].Feedback = feedback
				found = true
				break
			}
		}
		online := e.reportMode == ModeOnline
		e.mu.Unlock()

		if found && online {
			go e.remoteReview(actorID(actor), id, model.ReviewPatch{Status: status, Feedback: feedback})
		}
	})
	if !found {
		return nil
	}

	switch status {
	case model.StatusAccepted:
		e.notif.Push(prev.UserID, fmt.Sprintf("Laporan Anda %q telah DITERIMA.", prev.Description), model.NotifSuccess)
	case model.StatusRejected:
		msg := fmt.Sprintf("Laporan Anda %q DITOLAK.", prev.Description)
		if feedback != "" {
			msg = fmt.Sprintf("%s Alasan: %s", msg, feedback)
		}
		e.notif.Push(prev.UserID, msg, model.NotifError)
	}
	if actor != nil {
		e.notif.Push(actor.ID, fmt.Sprintf("Laporan berhasil ditandai sebagai %s", status), model.NotifSuccess)
	}
	return nil
}

func (e *Engine) remoteReview(actorID, id string, patch model.ReviewPatch) {
	if err := e.store.UpdateReport(context.Background(), id, patch); err != nil {
		e.notif.Push(actorID, "Gagal memperbarui status laporan", model.NotifError)
	}
}

// enqueueReportEvent feeds a realtime change event into the inbox.
// Events may race with optimistic local operations; last-writer-wins
// by id is the accepted resolution.
func (e *Engine) enqueueReportEvent(ev store.ReportEvent) {
	e.post(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		switch ev.Kind {
		case store.ChangeInsert:
			for _, r := range e.reports {
				if r.ID == ev.Row.ID {
					return
				}
			}
			e.reports = append([]model.Report{ev.Row}, e.reports...)
		case store.ChangeUpdate:
			for i := range e.reports {
				if e.reports[i].ID == ev.Row.ID {
					e.reports[i] = ev.Row
					return
				}
			}
		case store.ChangeDelete:
			e.removeReportLocked(ev.Row.ID)
		}
	})
}

// removeReportLocked removes the report with the given id. Caller
// holds e.mu.
func (e *Engine) removeReportLocked(id string) {
	for i := range e.reports {
		if e.reports[i].ID == id {
			e.reports = append(e.reports[:i], e.reports[i+1:]...)
			return
		}
	}
}

func actorID(u *model.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}
