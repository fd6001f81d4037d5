package state

import (
	"sync"

	"github.com/malonaz/chatd/internal/debug"
)

// Notifier surfaces non-blocking failure notifications to the user, the
// toast analog. Implementations must not block the mutation path.
type Notifier interface {
	Error(title string)
}

const maxRecordedNotifications = 50

// ToastNotifier logs notifications and keeps a bounded history for the
// viewer to display.
type ToastNotifier struct {
	mu     sync.Mutex
	recent []string
}

func NewToastNotifier() *ToastNotifier {
	return &ToastNotifier{}
}

func (n *ToastNotifier) Error(title string) {
	debug.GetLogger().Error(title)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.recent = append(n.recent, title)
	if len(n.recent) > maxRecordedNotifications {
		n.recent = n.recent[len(n.recent)-maxRecordedNotifications:]
	}
}

// Recent returns the recorded notifications, oldest first.
func (n *ToastNotifier) Recent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.recent))
	copy(out, n.recent)
	return out
}
