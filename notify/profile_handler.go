package notify

import (
	"context"

	"sipinjam/db"

	"go.uber.org/zap"
)

// RunProfileCreator subscribes to identity.created and provisions the
// default profile for each new identity. This is the explicit handler
// replacing the storage-side trigger: creation is idempotent, so a
// redelivered event is harmless.
func RunProfileCreator(ctx context.Context, n *Notifier, repo *db.Repo, lg *zap.SugaredLogger) {
	events := n.Subscribe(ctx, TopicIdentityCreated)
	for ev := range events {
		name := ev.Fields["fullName"]
		email := ev.Fields["email"]
		if name == "" {
			name = email
		}
		if _, err := repo.EnsureProfile(ctx, ev.EntityID, name, email); err != nil {
			lg.Errorw("auto-create profile", "identity", ev.EntityID, "error", err)
			continue
		}
		lg.Infow("profile created", "identity", ev.EntityID)
	}
}
