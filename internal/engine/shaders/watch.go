package shaders

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/litscene/internal/logger"
)

// Watcher reports shader files written in a directory. Its goroutine only
// sends base names; compilation happens on the GL thread via Library.Drain.
type Watcher struct {
	watcher *fsnotify.Watcher
	changes chan string
	done    chan struct{}
}

// Watch starts watching dir.
func Watch(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		watcher: fw,
		changes: make(chan string, 16),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes returns the channel of changed file names.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

func (w *Watcher) loop() {
	log := logger.Named("shaders")
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Base(ev.Name)
			if !isShaderFile(name) {
				continue
			}
			select {
			case w.changes <- name:
			default:
				// Frame loop is behind; the next write resends.
				log.Debug("Dropping shader change", zap.String("file", name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("Shader watcher error", zap.Error(err))
		}
	}
}

// Close stops the watcher and waits for its goroutine.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func isShaderFile(name string) bool {
	for _, src := range Programs {
		if src.Uses(name) {
			return true
		}
	}
	return false
}
