package kontenbot

import "errors"

// Transport-neutral update types. The Telegram library stays confined to
// adapter.go; everything else in the package works with these.

type Update struct {
	Message       *Message
	CallbackQuery *CallbackQuery
}

type Chat struct {
	ID   int64
	Type string
}

type MessageSender struct {
	ID int64
}

type PhotoSize struct {
	FileID string
	Width  int
	Height int
}

type Message struct {
	MessageID int
	Chat      Chat
	From      *MessageSender
	Text      string
	Photo     []PhotoSize
}

func (m *Message) IsCommand() bool {
	return len(m.Text) > 0 && m.Text[0] == '/'
}

func (m *Message) Command() string {
	if !m.IsCommand() {
		return ""
	}
	cmd := m.Text[1:]
	for i := 0; i < len(cmd); i++ {
		if cmd[i] == ' ' || cmd[i] == '@' {
			return cmd[:i]
		}
	}
	return cmd
}

// LargestPhoto returns the highest-resolution variant of the photo.
func (m *Message) LargestPhoto() (PhotoSize, bool) {
	if len(m.Photo) == 0 {
		return PhotoSize{}, false
	}
	best := m.Photo[0]
	for _, p := range m.Photo[1:] {
		if p.Width*p.Height > best.Width*best.Height {
			best = p
		}
	}
	return best, true
}

type CallbackQuery struct {
	ID      string
	Data    string
	From    *MessageSender
	Message *Message
}

type ParseMode string

const (
	ParseModeHTML     ParseMode = "html"
	ParseModeMarkdown ParseMode = "markdown"
)

type ReplyMarkup interface{}

type InlineKeyboardButton struct {
	Text         string
	URL          string
	CallbackData string
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton
}

type MessageConfig struct {
	ParseMode   ParseMode
	ReplyMarkup ReplyMarkup
}

var (
	ErrForbidden    = errors.New("forbidden")
	ErrChatNotFound = errors.New("chat not found")
)

const (
	errChatNotFound = "Bad Request: chat not found"
	errNotMember    = "Forbidden: bot is not a member of the channel chat"
)

const (
	CmdStart  = "start"
	CmdCancel = "batal"
)

// Callback payload grammar: {action}_{collection}_{docID}.
const (
	actionMenu   = "menu"
	actionView   = "view"
	actionAdd    = "add"
	actionEdit   = "edit"
	actionDelete = "delete"
	actionList   = "list"
)

const (
	colPayment     = "pembayaran"
	colSocial      = "sosial"
	colTestimonial = "testimoni"
	colMain        = "main"
)

// Flow steps. Each step awaits exactly one input kind (text or photo);
// anything else is ignored until the awaited kind arrives.
const (
	stepQRISPhoto        = "get_qris_photo"
	stepPaymentNumber    = "get_payment_nomor"
	stepPaymentOwner     = "get_payment_pemilik"
	stepSocialLink       = "get_social_link"
	stepTestimonialPhoto = "get_testimoni_photo"
	stepTestimonialName  = "get_testimoni_nama"
	stepTestimonialBody  = "get_testimoni_isi"
)
