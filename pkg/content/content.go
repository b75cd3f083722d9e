// Package content loads the portfolio document that feeds the marquee rows
// and derives the banner text, project cards and video previews from it.
package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-drift/marquee/pkg/errors"
)

//go:embed default_content.json
var defaultContent []byte

// Site holds page-level metadata.
type Site struct {
	Title            string   `json:"title"`
	HeroText         string   `json:"heroText"`
	HeroSparkleWords []string `json:"heroSparkleWords"`
}

// Link is a navigation link.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Navigation describes the top navigation bar.
type Navigation struct {
	Logo  string `json:"logo"`
	Links []Link `json:"links"`
}

// Project is one entry of the projects marquee.
type Project struct {
	ID        string `json:"id"`
	ModalType string `json:"modalType"`
	Label     string `json:"label"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	Alt       string `json:"alt"`
	Video     string `json:"video"`
}

// Key returns the preview key: ModalType when set, otherwise ID.
func (p Project) Key() string {
	if p.ModalType != "" {
		return p.ModalType
	}
	return p.ID
}

// JourneyItem is one accordion entry.
type JourneyItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Journey is the accordion section.
type Journey struct {
	Title string        `json:"title"`
	Items []JourneyItem `json:"items"`
}

// Panel is a full-width content panel.
type Panel struct {
	ID          string `json:"id"`
	Number      string `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Background  string `json:"background"`
	Theme       string `json:"theme"`
}

// MenuContent is the detail page of a menu item.
type MenuContent struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// MenuItem is one entry of the menu.
type MenuItem struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Background string       `json:"background"`
	Content    *MenuContent `json:"content"`
}

// Document is the whole content file.
type Document struct {
	Site       Site       `json:"site"`
	Navigation Navigation `json:"navigation"`
	Projects   []Project  `json:"projects"`
	Journey    Journey    `json:"journey"`
	Panels     []Panel    `json:"panels"`
	Menu       []MenuItem `json:"menu"`
}

// Parse decodes a content document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return &doc, nil
}

// Default returns the bundled document.
func Default() (*Document, error) {
	return Parse(defaultContent)
}

// Load reads the document at path. If path is empty or cannot be read or
// decoded, the bundled document is used instead. An error is returned only
// when no source yields a document.
func Load(path string) (*Document, error) {
	const op = "content.Load"
	if path != "" {
		doc, err := loadFile(path)
		if err == nil {
			return doc, nil
		}
		errors.Debugf("%s: %v, using bundled content", op, err)
	}
	doc, err := Default()
	if err != nil {
		merr := &errors.MarqueeError{Op: op, Kind: errors.KindContent, Err: err}
		errors.Report(merr)
		return nil, merr
	}
	return doc, nil
}

func loadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
