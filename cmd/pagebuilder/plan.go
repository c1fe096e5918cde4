package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"page-builder-backend/internal/content"
)

// Plan describes a page to assemble.
type Plan struct {
	Name            string        `yaml:"name"`
	Slug            string        `yaml:"slug"`
	Category        string        `yaml:"category"`
	CategoryID      uint          `yaml:"categoryId"`
	MetaTitle       string        `yaml:"metaTitle"`
	MetaDescription string        `yaml:"metaDescription"`
	Homepage        bool          `yaml:"homepage"`
	Sections        []PlanSection `yaml:"sections"`
}

type PlanSection struct {
	Type    string      `yaml:"type"`
	Name    string      `yaml:"name"`
	Theme   string      `yaml:"theme"`
	Visible *bool       `yaml:"visible"`
	Content content.Map `yaml:"content"`
}

func loadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read plan: %w", err)
	}
	return parsePlan(data)
}

func parsePlan(data []byte) (Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return Plan{}, fmt.Errorf("parse plan: %w", err)
	}

	plan.Name = strings.TrimSpace(plan.Name)
	if plan.Name == "" {
		return Plan{}, fmt.Errorf("plan: name is required")
	}
	for i, section := range plan.Sections {
		if strings.TrimSpace(section.Type) == "" {
			return Plan{}, fmt.Errorf("plan: section %d has no type", i+1)
		}
	}
	return plan, nil
}
