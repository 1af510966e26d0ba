package driver

import (
	"github.com/fsnotify/fsnotify"
)

// Watch re-invokes fn with a freshly mapped image of path every time its
// contents change on disk, until stop is closed. It runs its own event
// loop goroutine; fn is always called from that goroutine, never
// concurrently with itself. Errors fn returns are reported through onErr
// rather than stopping the loop — a single bad decode shouldn't kill a
// long-running watch session.
func Watch(path string, stop <-chan struct{}, fn func([]byte) error, onErr func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := w.Add(path); err != nil {
		w.Close()
		return err
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-stop:
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				mapped, err := Open(path)
				if err != nil {
					onErr(err)
					continue
				}
				err = fn(mapped.Bytes)
				mapped.Close()
				if err != nil {
					onErr(err)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				onErr(err)
			}
		}
	}()

	return nil
}
