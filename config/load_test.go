package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skypaper/skypaper/config"
)

var goodConfig = `
{
	"api_key": "secret",
	"jobs": [
		{
			"image_dir": "/var/lib/skypaper/images",
			"cron": "0 9 * * *",
			"enable": true,
			"set_wallpaper": true,
			"max_size": "20MB"
		},
		{
			"image_dir": "/tmp/apod",
			"cron": "30 12 * * *",
			"enable": false,
			"hd": true,
			"name_by_hash": true
		}
	]
}
`

var badConfig = `
[]
`

func TestLoad_Good(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.json")
	err := os.WriteFile(testFile, []byte(goodConfig), 0600)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadFromFile(testFile)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.APIKey != "secret" {
		t.Errorf("expected api key secret, got %s", cfg.APIKey)
	}

	if len(cfg.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(cfg.Jobs))
	}

	if cfg.Jobs[0].ImageDir != "/var/lib/skypaper/images" {
		t.Errorf("unexpected image dir %s", cfg.Jobs[0].ImageDir)
	}

	if cfg.Jobs[0].Schedule != "0 9 * * *" {
		t.Errorf("unexpected schedule %s", cfg.Jobs[0].Schedule)
	}

	if !cfg.Jobs[0].SetWallpaper {
		t.Error("expected set_wallpaper")
	}

	if cfg.Jobs[0].MaxSize.Size != 20*1000*1000 {
		t.Errorf("expected max size 20MB, got %d", cfg.Jobs[0].MaxSize.Size)
	}

	if cfg.Jobs[1].Enable {
		t.Error("expected second job disabled")
	}

	if !cfg.Jobs[1].HD || !cfg.Jobs[1].NameByHash {
		t.Error("expected hd and name_by_hash on second job")
	}
}

func TestLoad_Bad(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.json")
	err := os.WriteFile(testFile, []byte(badConfig), 0600)
	if err != nil {
		t.Fatal(err)
	}

	_, err = config.LoadFromFile(testFile)
	if err == nil {
		t.Error("expected error")
	}
}

func TestLoad_NoFile(t *testing.T) {
	_, err := config.LoadFromFile("unexisting")
	if err == nil {
		t.Error("expected error")
	}
}

func TestLoad_Unreadable(t *testing.T) {
	_, err := config.LoadFromFile(t.TempDir())
	if err == nil {
		t.Error("expected error")
	}
}
