package config

import "github.com/rs/zerolog"

type Config struct {
	// APIKey for the APOD API. The SKYPAPER_API_KEY environment variable
	// takes precedence when set.
	APIKey string      `json:"api_key"`
	APIURL string      `json:"api_url,omitempty"`
	Jobs   []ConfigJob `json:"jobs,omitempty"`
}

type ConfigJob struct {
	ImageDir     string       `json:"image_dir"`
	Schedule     string       `json:"cron"`
	Enable       bool         `json:"enable"`
	HD           bool         `json:"hd,omitempty"`
	SetWallpaper bool         `json:"set_wallpaper,omitempty"`
	NameByHash   bool         `json:"name_by_hash,omitempty"`
	MaxSize      SizeArgument `json:"max_size,omitempty"`
}

func (j ConfigJob) MarshalZerologObject(e *zerolog.Event) {
	e.Str("image_dir", j.ImageDir)
	e.Str("schedule", j.Schedule)
	e.Bool("enable", j.Enable)

	if j.HD {
		e.Bool("hd", true)
	}
	if j.SetWallpaper {
		e.Bool("set_wallpaper", true)
	}
	if j.NameByHash {
		e.Bool("name_by_hash", true)
	}
	if j.MaxSize.Size > 0 {
		e.Int64("max_size", j.MaxSize.Size)
	}
}
