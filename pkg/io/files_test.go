package io

import (
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"
)

func TestCreateAll(t *testing.T) {

	t.Run("it creates a file with missing parent directories", func(t *testing.T) {
		defaultUmask := syscall.Umask(0)
		defer syscall.Umask(defaultUmask)

		root := t.TempDir()

		f, err := CreateAll(filepath.Join(root, "media", "recipes", "image.png"), 0644, 0755)
		if err != nil {
			t.Fatal("fail to create file:", err)
		}
		f.Close()

		for _, dir := range []string{"media", filepath.Join("media", "recipes")} {
			stat, err := os.Stat(filepath.Join(root, dir))
			if err != nil || !stat.IsDir() {
				t.Fatal("cannot create directory (stat, err):", stat, err)
			}
			if stat.Mode().Perm() != 0755 {
				t.Fatal("directory mod is wrong. (actual, expected): ", stat.Mode(), fs.FileMode(0755))
			}
		}

		fStat, err := os.Stat(filepath.Join(root, "media", "recipes", "image.png"))
		if err != nil || !fStat.Mode().IsRegular() {
			t.Fatal("cannot create file (stat, err):", fStat, err)
		}
		if fStat.Mode().Perm() != 0644 {
			t.Fatal("file mod is wrong. (actual, expected): ", fStat.Mode(), fs.FileMode(0644))
		}
	})

	t.Run("it creates a file directly when parent exists", func(t *testing.T) {
		defaultUmask := syscall.Umask(0)
		defer syscall.Umask(defaultUmask)

		root := t.TempDir()

		f, err := CreateAll(filepath.Join(root, "targetFile"), 0600, 0700)
		if err != nil {
			t.Fatal("fail to create file:", err)
		}
		f.Close()

		fStat, err := os.Stat(filepath.Join(root, "targetFile"))
		if err != nil || fStat.IsDir() || !fStat.Mode().IsRegular() {
			t.Fatal("cannot create targetFile (stat, err):", fStat, err)
		}
		if fStat.Mode().Perm() != 0600 {
			t.Fatal("target file mod is wrong. (actual, expected): ", fStat.Mode(), fs.FileMode(0600))
		}
	})

	t.Run("it truncates an existing file", func(t *testing.T) {
		root := t.TempDir()
		name := filepath.Join(root, "targetFile")

		if err := os.WriteFile(name, []byte("previous content"), 0644); err != nil {
			t.Fatal("fail to prepare file:", err)
		}

		f, err := CreateAll(name, 0644, 0755)
		if err != nil {
			t.Fatal("fail to create file:", err)
		}
		f.Close()

		content, err := os.ReadFile(name)
		if err != nil {
			t.Fatal("fail to read file:", err)
		}
		if len(content) != 0 {
			t.Error("file is not truncated:", string(content))
		}
	})
}
