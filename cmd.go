package main

import "github.com/skypaper/skypaper/config"

type Command struct {
	Version struct{} `cmd:"" help:"Print version information."`
	Fetch   struct {
		Dir          string              `help:"directory in which fetched images are stored" short:"i" required:""`
		Date         string              `help:"picture date (YYYY-MM-DD), defaults to today" short:"t"`
		Database     string              `help:"database path" short:"d" required:""`
		APIKey       string              `help:"APOD API key" env:"SKYPAPER_API_KEY" default:"DEMO_KEY"`
		APIURL       string              `help:"APOD API base URL" default:"${api_url}"`
		HD           bool                `help:"prefer the HD image variant"`
		NameByHash   bool                `help:"name the stored file by content fingerprint instead of remote name, avoiding name collisions between different pictures"`
		SetWallpaper bool                `help:"set the fetched image as the desktop background" short:"w"`
		MaxSize      config.SizeArgument `help:"maximum asset download size in bytes"`
		DryRun       bool                `help:"don't write any files, just print the output"`
	} `cmd:"" help:"Fetch one picture of the day into the cache."`
	List struct {
		Database string `help:"database path" short:"d" required:""`
	} `cmd:"" help:"List cached assets."`
	Daemon struct {
		Config   string `help:"config file path" short:"c" required:""`
		Database string `help:"database path" short:"d" required:""`
		DryRun   bool   `help:"don't write any files, just print the output"`
	} `cmd:"" help:"Run the scheduled fetch service."`
}
