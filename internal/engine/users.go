package engine

import (
	"context"

	"github.com/google/uuid"

	errs "lapor/internal/errors"
	"lapor/internal/model"
	"lapor/internal/store"
)

// CreateUser adds a profile record and mirrors it to the store. The
// duplicate check runs on the inbox with the apply itself, so two
// concurrent creates with the same PJLP number cannot both pass it.
func (e *Engine) CreateUser(ctx context.Context, actor *model.User, user model.User) (model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	duplicate := false
	e.do(func() {
		e.mu.Lock()
		for _, u := range e.users {
			if u.PJLPNumber == user.PJLPNumber {
				duplicate = true
				break
			}
		}
		if duplicate {
			e.mu.Unlock()
			return
		}
		e.users = append(e.users, user)
		online := e.userMode == ModeOnline
		e.mu.Unlock()

		if online {
			u := user
			go func() {
				if err := e.store.InsertProfile(context.Background(), &u); err != nil {
					e.notif.Push(actorID(actor), "Gagal menyimpan petugas baru", model.NotifError)
				}
			}()
		}
	})
	if duplicate {
		return model.User{}, errs.ErrUserAlreadyExists
	}
	return user, nil
}

// UpdateUser applies a partial profile update. Unknown ids fail before
// any state is touched.
func (e *Engine) UpdateUser(ctx context.Context, actor *model.User, id string, patch model.UserPatch) (model.User, error) {
	var updated model.User
	found := false
	e.do(func() {
		e.mu.Lock()
		for i := range e.users {
			if e.users[i].ID == id {
				patch.Apply(&e.users[i])
				updated = e.users[i]
				found = true
				break
			}
		}
		online := e.userMode == ModeOnline
		e.mu.Unlock()

		if found && online {
			go func() {
				if err := e.store.UpdateProfile(context.Background(), id, patch); err != nil {
					e.notif.Push(actorID(actor), "Gagal memperbarui data petugas", model.NotifError)
				}
			}()
		}
	})
	if !found {
		return model.User{}, errs.ErrUserNotFound
	}
	return updated, nil
}

// SoftDeleteUser clears the active flag, locking the account out
// without touching its report history.
func (e *Engine) SoftDeleteUser(ctx context.Context, actor *model.User, id string) error {
	inactive := false
	_, err := e.UpdateUser(ctx, actor, id, model.UserPatch{IsActive: &inactive})
	return err
}

// HardDeleteUser removes the user and every report they own. On the
// remote path the report deletion must complete before the profile
// deletion; if it fails the user record is left unchanged and an ERROR
// notification is raised. Unlike the other mutations this one waits
// for the remote store, because the two-step delete is atomic at the
// user-record level.
func (e *Engine) HardDeleteUser(ctx context.Context, actor *model.User, id string) error {
	e.mu.RLock()
	online := e.userMode == ModeOnline && e.reportMode == ModeOnline
	exists := false
	for _, u := range e.users {
		if u.ID == id {
			exists = true
			break
		}
	}
	e.mu.RUnlock()
	if !exists {
		return errs.ErrUserNotFound
	}

	if online {
		if err := e.store.DeleteReportsByUser(ctx, id); err != nil {
			e.notif.Push(actorID(actor), "Gagal menghapus riwayat laporan user", model.NotifError)
			return errs.ErrRemoteDelete
		}
		if err := e.store.DeleteProfile(ctx, id); err != nil {
			e.notif.Push(actorID(actor), "Gagal menghapus user", model.NotifError)
			return err
		}
	}

	e.do(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i := range e.users {
			if e.users[i].ID == id {
				e.users = append(e.users[:i], e.users[i+1:]...)
				break
			}
		}
		kept := e.reports[:0]
		for _, r := range e.reports {
			if r.UserID != id {
				kept = append(kept, r)
			}
		}
		e.reports = kept
	})
	return nil
}

// enqueueProfileEvent reconciles a realtime profile change into the
// users snapshot by id, mirroring the report reconciliation rules.
func (e *Engine) enqueueProfileEvent(ev store.ProfileEvent) {
	e.post(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		switch ev.Kind {
		case store.ChangeInsert:
			for _, u := range e.users {
				if u.ID == ev.Row.ID {
					return
				}
			}
			e.users = append(e.users, ev.Row)
		case store.ChangeUpdate:
			for i := range e.users {
				if e.users[i].ID == ev.Row.ID {
					e.users[i] = ev.Row
					return
				}
			}
		case store.ChangeDelete:
			for i := range e.users {
				if e.users[i].ID == ev.Row.ID {
					e.users = append(e.users[:i], e.users[i+1:]...)
					return
				}
			}
		}
	})
}
