package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"gopkg.in/yaml.v3"
)

// Profile is the optional yaml analysis profile. Only fields present in
// the file are applied, and flags given on the command line win.
type Profile struct {
	Organism   string   `yaml:"organism"`
	Sources    []string `yaml:"sources"`
	Padj       *float64 `yaml:"padj"`
	Log2FC     *float64 `yaml:"log2fc"`
	Threshold  *float64 `yaml:"threshold"`
	Correction string   `yaml:"correction"`
	Ordered    *bool    `yaml:"ordered"`
	All        *bool    `yaml:"all"`
	Top        *int     `yaml:"top"`
	URL        string   `yaml:"url"`
	Timeout    string   `yaml:"timeout"`
}

func ApplyProfile(path string) {
	var profile Profile
	simpleUtil.CheckErr(yaml.Unmarshal(simpleUtil.HandleError(os.ReadFile(path)), &profile))
	slog.Info("Profile", "cfg", path, "profile", profile)

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if profile.Organism != "" && !set["organism"] {
		*organism = profile.Organism
	}
	if len(profile.Sources) > 0 && !set["sources"] {
		*sources = strings.Join(profile.Sources, ",")
	}
	if profile.Padj != nil && !set["p"] {
		*maxPadj = *profile.Padj
	}
	if profile.Log2FC != nil && !set["fc"] {
		*minLFC = *profile.Log2FC
	}
	if profile.Threshold != nil && !set["threshold"] {
		*threshold = *profile.Threshold
	}
	if profile.Correction != "" && !set["correction"] {
		*correction = profile.Correction
	}
	if profile.Ordered != nil && !set["ordered"] {
		*ordered = *profile.Ordered
	}
	if profile.All != nil && !set["all"] {
		*all = *profile.All
	}
	if profile.Top != nil && !set["top"] {
		*top = *profile.Top
	}
	if profile.URL != "" && !set["url"] {
		*apiURL = profile.URL
	}
	if profile.Timeout != "" && !set["timeout"] {
		*timeout = simpleUtil.HandleError(time.ParseDuration(profile.Timeout))
	}
}
