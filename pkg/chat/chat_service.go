package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Univearth/ai-hackathon/domain"
	"github.com/Univearth/ai-hackathon/pkg/analysis"
	"github.com/Univearth/ai-hackathon/pkg/document"
)

// StartKeyword creates a fresh inventory session when sent as a text
// message.
const StartKeyword = "スタート"

const (
	replyStarted     = "在庫リストを作成しました！商品の写真を送ってください 📷"
	replyNeedStart   = "「スタート」と送信すると在庫リストを作成します"
	replyHowToUse    = "商品の写真を送ると在庫リストに追加します 📷"
	replyErrorPrefix = "エラーが発生しました: "
	summaryTemplate  = "📦 %s\n⏰ 期限: %s\n🔢 分量: %g%s\n🏷️ 分類: %s"
)

type (
	// ChatService drives the per-user webhook state machine. It never
	// returns an error to the dispatcher: every failure becomes a reply
	// to the end user.
	ChatService interface {
		HandleEvent(ctx context.Context, event domain.WebhookEvent)
	}

	chatService struct {
		sessions  SessionStore
		analyzer  analysis.AnalysisService
		documents document.DocumentService
		messenger Messenger
	}
)

func NewChatService(
	sessions SessionStore,
	analyzer analysis.AnalysisService,
	documents document.DocumentService,
	messenger Messenger,
) ChatService {
	return &chatService{
		sessions:  sessions,
		analyzer:  analyzer,
		documents: documents,
		messenger: messenger,
	}
}

func (s *chatService) HandleEvent(ctx context.Context, event domain.WebhookEvent) {
	if event.Type != "message" {
		return
	}

	switch event.Message.Type {
	case "text":
		s.handleText(ctx, event)
	case "image":
		s.handleImage(ctx, event)
	}
}

func (s *chatService) handleText(ctx context.Context, event domain.WebhookEvent) {
	userID := event.Source.UserID

	if event.Message.Text == StartKeyword {
		s.sessions.Reset(userID)
		s.reply(ctx, event.ReplyToken, replyStarted)
		return
	}

	if _, ok := s.sessions.Load(userID); !ok {
		s.reply(ctx, event.ReplyToken, replyNeedStart)
		return
	}

	s.reply(ctx, event.ReplyToken, replyHowToUse)
}

func (s *chatService) handleImage(ctx context.Context, event domain.WebhookEvent) {
	userID := event.Source.UserID

	session, ok := s.sessions.Load(userID)
	if !ok {
		s.reply(ctx, event.ReplyToken, replyNeedStart)
		return
	}

	data, contentType, err := s.messenger.MessageContent(ctx, event.Message.ID)
	if err != nil {
		s.replyError(ctx, event.ReplyToken, err)
		return
	}

	record, err := s.analyzer.AnalyzeBytes(ctx, data, extForMIME(contentType), contentType)
	if err != nil {
		s.replyError(ctx, event.ReplyToken, err)
		return
	}

	session.Products = append(session.Products, record)
	s.sessions.Save(userID, session)

	serialized, err := json.Marshal(session)
	if err != nil {
		s.replyError(ctx, event.ReplyToken, err)
		return
	}

	if _, err := s.documents.UploadJSON(ctx, userID, serialized); err != nil {
		s.replyError(ctx, event.ReplyToken, err)
		return
	}

	summary := fmt.Sprintf(summaryTemplate,
		record.Name, record.ExpirationDate, record.Amount, record.Unit, record.Category)
	s.reply(ctx, event.ReplyToken, summary)
}

func (s *chatService) reply(ctx context.Context, replyToken string, text string) {
	if err := s.messenger.ReplyText(ctx, replyToken, text); err != nil {
		log.Error().Err(err).Msg("failed to send reply")
	}
}

func (s *chatService) replyError(ctx context.Context, replyToken string, cause error) {
	log.Error().Err(cause).Msg("chat pipeline failed")
	s.reply(ctx, replyToken, replyErrorPrefix+cause.Error())
}

func extForMIME(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
