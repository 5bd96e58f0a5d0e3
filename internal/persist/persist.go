package persist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"qrpayload/internal/config"
	"qrpayload/internal/fileutil"
	"qrpayload/internal/services"
)

const lockRetryDelay = 50 * time.Millisecond

// ErrLocked is returned when another run holds the destination lock past the timeout.
var ErrLocked = errors.New("output is locked by another run")

// Persister writes payload bytes to destination files.
type Persister struct {
	lockDir     string
	fileMode    os.FileMode
	lockTimeout time.Duration
}

// New constructs a Persister from explicit settings. An empty lockDir disables locking.
func New(lockDir string, mode os.FileMode, lockTimeout time.Duration) *Persister {
	if mode == 0 {
		mode = 0o644
	}
	return &Persister{lockDir: lockDir, fileMode: mode, lockTimeout: lockTimeout}
}

// NewFromConfig constructs a Persister using the output settings of cfg.
func NewFromConfig(cfg *config.Config) *Persister {
	return New(cfg.LockDir(), cfg.OutputFileMode(), cfg.LockTimeout())
}

// Write stores data at target.Path, replacing any existing file. Parent
// directories are created as needed. All failures carry services.ErrIO.
func (p *Persister) Write(ctx context.Context, target Target, data []byte) error {
	path := target.Path
	if path == "" {
		return services.Wrap(services.ErrIO, "persist", "validate", "output path is empty", nil)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return services.Wrap(services.ErrIO, "persist", "resolve", path, err)
	}

	unlock, err := p.acquire(ctx, abs)
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return services.Wrap(services.ErrIO, "persist", "mkdir", filepath.Dir(abs), err)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return services.Wrap(services.ErrIO, "persist", "validate", abs+" is a directory", nil)
	}
	// Temp files for this destination can only be left by a run that died
	// while holding the same lock.
	if _, err := fileutil.CleanupTemp(abs); err != nil {
		return services.Wrap(services.ErrIO, "persist", "cleanup", abs, err)
	}
	if err := fileutil.WriteFileAtomic(abs, data, p.fileMode); err != nil {
		return services.Wrap(services.ErrIO, "persist", "write", abs, err)
	}
	return nil
}

func (p *Persister) acquire(ctx context.Context, abs string) (func(), error) {
	if p.lockDir == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(p.lockDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrIO, "persist", "lock", "create lock directory", err)
	}

	lock := flock.New(lockPath(p.lockDir, abs))
	var (
		ok  bool
		err error
	)
	if p.lockTimeout <= 0 {
		ok, err = lock.TryLock()
	} else {
		lockCtx, cancel := context.WithTimeout(ctx, p.lockTimeout)
		defer cancel()
		ok, err = lock.TryLockContext(lockCtx, lockRetryDelay)
		if err != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			err = nil
		}
	}
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "persist", "lock", abs, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrIO, "persist", "lock", abs, ErrLocked)
	}
	return func() { _ = lock.Unlock() }, nil
}

// lockPath maps a destination to a stable lock file name so locks never
// clutter the destination directory.
func lockPath(dir, abs string) string {
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(dir, hex.EncodeToString(sum[:8])+".lock")
}

// String describes the persister settings for debug logs.
func (p *Persister) String() string {
	return fmt.Sprintf("persister(mode=%04o, lock_timeout=%s)", p.fileMode, p.lockTimeout)
}
