// Package share 組合與寄送設計分享郵件
package share

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// ErrInvalidRecipient 收件人地址無法解析
var ErrInvalidRecipient = errors.New("invalid recipient address")

// Message 一封純文字 (可選 HTML) 郵件
type Message struct {
	To       string
	Subject  string
	Body     string
	HTMLBody string
}

// Mailer 寄送郵件的外部協作者
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Request 使用者提出的分享請求
type Request struct {
	To         string `json:"to"`
	SenderName string `json:"sender_name"`
	Note       string `json:"note"`
}

// ParseRecipient 驗證並回傳純地址部分
func ParseRecipient(to string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(to))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidRecipient, to)
	}
	return addr.Address, nil
}

// ComposeDesignMessage 建立分享設計代碼的郵件
func ComposeDesignMessage(code, resumeURL string, req Request) (Message, error) {
	to, err := ParseRecipient(req.To)
	if err != nil {
		return Message{}, err
	}

	sender := strings.TrimSpace(req.SenderName)
	if sender == "" {
		sender = "Someone"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s shared a wardrobe design with you.\n\n", sender)
	if note := strings.TrimSpace(req.Note); note != "" {
		fmt.Fprintf(&b, "%s\n\n", note)
	}
	fmt.Fprintf(&b, "Design code: %s\n", code)
	fmt.Fprintf(&b, "Open it here: %s\n\n", resumeURL)
	b.WriteString("You can also enter the code on the planner's \"Resume design\" page.\n")

	return Message{
		To:      to,
		Subject: fmt.Sprintf("%s shared wardrobe design %s", sender, code),
		Body:    b.String(),
	}, nil
}
