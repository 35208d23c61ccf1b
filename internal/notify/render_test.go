package notify

import "testing"

func TestRender(t *testing.T) {
	tests := []struct {
		eventType   Type
		wantTitle   string
		wantMessage string
	}{
		{TypeWater, "New water", "alice watered your post"},
		{TypeUnwater, "Water removed", "alice removed their water from your post"},
		{TypeComment, "New comment", "alice commented on your post"},
		{TypeReply, "New reply", "alice replied to a comment on your post"},
		{TypeFollow, "New follower", "alice is now following you"},
		{TypeMention, "You were mentioned", "alice mentioned you in a post"},
		{TypeFeed, "New post", "alice shared a new post"},
		{TypeTagfeed, "New tag activity", "alice posted in a tag you follow"},
		{TypeChatMessage, "New message", "alice sent you a message"},
	}
	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			title, message := Render(tt.eventType, "alice")
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if message != tt.wantMessage {
				t.Errorf("message = %q, want %q", message, tt.wantMessage)
			}
		})
	}
}

func TestRenderUnknownType(t *testing.T) {
	title, message := Render(Type("bogus"), "alice")
	if title != "Invalid event" {
		t.Errorf("title = %q, want %q", title, "Invalid event")
	}
	if message == "" {
		t.Error("unknown type must still render a non-empty message")
	}
}
