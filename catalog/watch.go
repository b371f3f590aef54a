package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch 监听目录及其子目录, .json 文件变化时重新加载, ctx 结束时返回
func (c *Catalog) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := c.addTree(watcher, c.dir); err != nil {
		return fmt.Errorf("watch %s: %w", c.dir, err)
	}
	c.logger.Info().Str("dir", c.dir).Msg("watching block catalog")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !c.relevant(watcher, event) {
				continue
			}
			c.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("block file changed")
			if err := c.Load(); err != nil {
				c.logger.Error().Err(err).Msg("reload block catalog")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn().Err(err).Msg("block catalog watcher")
		}
	}
}

// relevant 新建的子目录会加入监听; 删除或改名一律重新加载, 被移走的可能是整个子目录
func (c *Catalog) relevant(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := c.addTree(watcher, event.Name); err != nil {
				c.logger.Warn().Err(err).Str("dir", event.Name).Msg("watch new block directory")
			}
			return true
		}
	}
	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		return true
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0 &&
		strings.EqualFold(filepath.Ext(event.Name), ".json")
}

// addTree 监听 root 以及其下所有目录, 与 Load 遍历的范围一致
func (c *Catalog) addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != root {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
}
