package crawlkit

import (
	"encoding/json"
	"time"
)

// ActionType names a browser action.
type ActionType string

const (
	ActionWait     ActionType = "wait"
	ActionClick    ActionType = "click"
	ActionTypeText ActionType = "type"
	ActionPress    ActionType = "press"
	ActionScroll   ActionType = "scroll"
	ActionEvaluate ActionType = "evaluate"
)

// ScrollDirection is the direction of a scroll action.
type ScrollDirection string

const (
	ScrollUp   ScrollDirection = "up"
	ScrollDown ScrollDirection = "down"
)

// BrowserAction is one step executed in the page before content is captured.
// Build values with the Wait, Click, Type, Press, Scroll and Evaluate helpers;
// only the fields relevant to Type are sent.
type BrowserAction struct {
	Type         ActionType      `json:"type"`
	Milliseconds int64           `json:"milliseconds,omitempty"`
	Selector     string          `json:"selector,omitempty"`
	Text         string          `json:"text,omitempty"`
	Key          string          `json:"key,omitempty"`
	Direction    ScrollDirection `json:"direction,omitempty"`
	Script       string          `json:"script,omitempty"`
}

// MarshalJSON always sends milliseconds on a wait action, including zero.
func (a BrowserAction) MarshalJSON() ([]byte, error) {
	type action BrowserAction
	if a.Type != ActionWait {
		return json.Marshal(action(a))
	}
	return json.Marshal(struct {
		Type         ActionType `json:"type"`
		Milliseconds int64      `json:"milliseconds"`
	}{a.Type, a.Milliseconds})
}

// WaitAction pauses for d.
func WaitAction(d time.Duration) BrowserAction {
	return BrowserAction{Type: ActionWait, Milliseconds: d.Milliseconds()}
}

// ClickAction clicks the first element matching selector.
func ClickAction(selector string) BrowserAction {
	return BrowserAction{Type: ActionClick, Selector: selector}
}

// TypeAction types text into the element matching selector.
func TypeAction(selector, text string) BrowserAction {
	return BrowserAction{Type: ActionTypeText, Selector: selector, Text: text}
}

// PressAction presses a keyboard key, e.g. "Enter".
func PressAction(key string) BrowserAction {
	return BrowserAction{Type: ActionPress, Key: key}
}

// ScrollAction scrolls the page.
func ScrollAction(direction ScrollDirection) BrowserAction {
	return BrowserAction{Type: ActionScroll, Direction: direction}
}

// EvaluateAction runs script in the page context.
func EvaluateAction(script string) BrowserAction {
	return BrowserAction{Type: ActionEvaluate, Script: script}
}

// WaitFor tells the scraper what to wait for before capturing the page:
// either a CSS selector or a fixed delay. The zero value waits for nothing.
type WaitFor struct {
	Selector string
	Duration time.Duration
}

// WaitForSelector waits until selector matches an element.
func WaitForSelector(selector string) *WaitFor {
	return &WaitFor{Selector: selector}
}

// WaitForDuration waits for a fixed delay.
func WaitForDuration(d time.Duration) *WaitFor {
	return &WaitFor{Duration: d}
}

// MarshalJSON encodes a selector as a string and a delay as milliseconds.
func (w WaitFor) MarshalJSON() ([]byte, error) {
	if w.Selector != "" {
		return json.Marshal(w.Selector)
	}
	return json.Marshal(w.Duration.Milliseconds())
}

// UnmarshalJSON accepts either form produced by MarshalJSON.
func (w *WaitFor) UnmarshalJSON(data []byte) error {
	var ms int64
	if err := json.Unmarshal(data, &ms); err == nil {
		*w = WaitFor{Duration: time.Duration(ms) * time.Millisecond}
		return nil
	}
	var selector string
	if err := json.Unmarshal(data, &selector); err != nil {
		return err
	}
	*w = WaitFor{Selector: selector}
	return nil
}
