package models

import (
	"reflect"
	"testing"
)

func TestMentionedUsernames(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", "just a plain post", nil},
		{"single", "hey @bob look at this", []string{"bob"}},
		{"multiple", "@alice and @bob and @carol_99", []string{"alice", "bob", "carol_99"}},
		{"lowercased", "thanks @Bob!", []string{"bob"}},
		{"deduplicated", "@bob @alice @BOB", []string{"bob", "alice"}},
		{"punctuation boundary", "ping @bob, then @alice.", []string{"bob", "alice"}},
		{"bare at sign", "meet me @ the garden", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MentionedUsernames(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MentionedUsernames(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMentionedTags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", "no tags here", nil},
		{"single", "my first #monstera", []string{"monstera"}},
		{"mixed case dedup", "#Cactus love #cactus #succulents", []string{"cactus", "succulents"}},
		{"tags and mentions", "@bob check #ferns", []string{"ferns"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MentionedTags(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MentionedTags(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
