package internal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	tt "github.com/slinlang/slin/internal/types"
)

// PrepareWatch sets up the directories to watch and the callback that
// receives issues when a watched file changes.
func (e *Engine) PrepareWatch(dirs []string, report func(filename string, issues []tt.Issue)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	e.watcher = watcher
	e.watchDirs = dirs
	e.report = report
	return nil
}

func (e *Engine) StartWatching() error {
	if e.isWatching {
		return fmt.Errorf("already watching")
	}
	if e.watcher == nil {
		return fmt.Errorf("watch not prepared")
	}

	for _, dir := range e.watchDirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return e.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.isWatching = true
	go e.watchLoop()
	return nil
}

func (e *Engine) StopWatching() error {
	if !e.isWatching {
		log.Println("not watching")
	}

	e.isWatching = false
	return e.watcher.Close()
}

func (e *Engine) watchLoop() {
	for e.isWatching {
		select {
		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event)
		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("error: %v", err)
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write == fsnotify.Write {
		// process file when detect change
		if strings.HasSuffix(event.Name, ".swift") {
			// wait for a while after file change to consider multiple changes as one
			time.Sleep(100 * time.Millisecond)
			issues, err := e.Run(event.Name)
			if err != nil {
				log.Printf("error: %v", err)
				return
			}
			if e.report != nil {
				e.report(event.Name, issues)
			}
		}
	}
}
