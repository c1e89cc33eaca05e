package audit

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"switchboard/src/device"
	"switchboard/src/events"
)

const timeLayout = "20060102 15:04:05"

// Manager records device actions to per-target audit files. It is an
// ordinary bus handler: register it with Mediate and every broadcast
// action for an enabled target gets an appended line.
type Manager struct {
	mu             sync.Mutex
	dir            string
	enabled        map[string]bool
	sessionStarted map[string]bool
	now            func() time.Time
}

// NewManager builds a manager writing audit files under dir.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:            dir,
		enabled:        map[string]bool{},
		sessionStarted: map[string]bool{},
		now:            time.Now,
	}
}

// WithNow swaps the time source (primarily for tests).
func (m *Manager) WithNow(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if now == nil {
		m.now = time.Now
		return
	}
	m.now = now
}

// EventType declares the kind this manager records.
func (m *Manager) EventType() events.EventType {
	return device.EventAction
}

// Handle appends an audit line for actions on enabled targets.
func (m *Manager) Handle(evt events.Event) error {
	act, ok := evt.(device.ActionEvent)
	if !ok || act.Target == "" {
		return nil
	}
	m.mu.Lock()
	enabled := m.enabled[act.Target]
	stamp := m.now().Format(timeLayout)
	m.mu.Unlock()
	if !enabled {
		return nil
	}
	if err := m.append(act.Target, fmt.Sprintf("%s %s %s", stamp, act.Verb, act.Target)); err != nil {
		fmt.Printf("[audit warning] %v\n", err)
	}
	return nil
}

// Enable activates auditing for a target.
func (m *Manager) Enable(target string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled[target] = true
	if !m.sessionStarted[target] {
		if err := m.append(target, fmt.Sprintf("session start at %s", m.now().Format(timeLayout))); err != nil {
			return err
		}
		m.sessionStarted[target] = true
	}
	return nil
}

// Disable turns off auditing for a target.
func (m *Manager) Disable(target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.enabled, target)
}

// Enabled returns whether auditing is active for a target.
func (m *Manager) Enabled(target string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled[target]
}

// ActiveTargets lists currently audited targets.
func (m *Manager) ActiveTargets() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, 0, len(m.enabled))
	for target := range m.enabled {
		result = append(result, target)
	}
	sort.Strings(result)
	return result
}

// FilePath resolves the audit file path for a target.
func (m *Manager) FilePath(target string) string {
	return filepath.Join(m.dir, fmt.Sprintf("%s.audit.log", target))
}

// Show returns the audit log contents for a target.
func (m *Manager) Show(target string) (string, error) {
	data, err := os.ReadFile(m.FilePath(target))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (m *Manager) append(target, line string) error {
	path := m.FilePath(target)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	writer := bufio.NewWriter(f)
	if _, err := writer.WriteString(strings.TrimSpace(line) + "\n"); err != nil {
		return err
	}
	return writer.Flush()
}
