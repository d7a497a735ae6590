package blobstore

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalBackend stores objects as files under a base directory. Development
// stand-in for S3; keys map directly to relative paths.
type LocalBackend struct {
	basePath    string
	externalURL string
}

func NewLocalBackend(config *Config) (*LocalBackend, error) {
	basePath := config.LocalPath
	if basePath == "" {
		basePath = "./storage"
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalBackend{
		basePath:    basePath,
		externalURL: strings.TrimSuffix(config.ExternalURL, "/"),
	}, nil
}

func (l *LocalBackend) Put(ctx context.Context, key string, data []byte, contentType string) error {
	fullPath := filepath.Join(l.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		os.Remove(fullPath)
		return err
	}
	return nil
}

func (l *LocalBackend) List(ctx context.Context, prefix string, maxKeys int) ([]ObjectInfo, error) {
	var objects []ObjectInfo

	err := filepath.WalkDir(l.basePath, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(l.basePath, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		objects = append(objects, ObjectInfo{
			Key:          key,
			Size:         fi.Size(),
			LastModified: fi.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	if maxKeys > 0 && len(objects) > maxKeys {
		objects = objects[:maxKeys]
	}
	return objects, nil
}

func (l *LocalBackend) Head(ctx context.Context) error {
	fi, err := os.Stat(l.basePath)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("storage path %q is not a directory", l.basePath)
	}
	return nil
}

func (l *LocalBackend) ObjectURL(key string) string {
	if l.externalURL != "" {
		return l.externalURL + "/" + key
	}
	return "/" + key
}
