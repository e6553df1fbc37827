package suggest

import (
	"reflect"
	"testing"
)

func TestSplitSuggestions(t *testing.T) {
	text := "1. Take a walk\n- Drink water\n\n  * Call a friend  \n2) Stretch\nWrite in a journal"
	got := splitSuggestions(text)
	want := []string{"Take a walk", "Drink water", "Call a friend", "Stretch", "Write in a journal"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitSuggestions = %v, want %v", got, want)
	}
}

func TestSplitSuggestionsKeepsLeadingDigits(t *testing.T) {
	// 以数字开头的正文不是列表标记，必须原样保留
	text := "10 minute walk outside\n1. 20 pushups\n2048 steps before noon"
	got := splitSuggestions(text)
	want := []string{"10 minute walk outside", "20 pushups", "2048 steps before noon"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitSuggestions = %v, want %v", got, want)
	}
}

func TestSplitSuggestionsCapsCount(t *testing.T) {
	var text string
	for i := 0; i < 30; i++ {
		text += "task line\n"
	}
	got := splitSuggestions(text)
	if len(got) != maxSuggestions {
		t.Fatalf("len = %d, want %d", len(got), maxSuggestions)
	}
}
