package kontenbot

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// In-memory stand-ins for the Telegram transport and the document store.

type sentMessage struct {
	ChatID int64
	Text   string
	Cfg    MessageConfig
}

type editedMessage struct {
	ChatID    int64
	MessageID int
	Text      string
	Cfg       MessageConfig
}

type answeredCallback struct {
	ID    string
	Text  string
	Alert bool
}

type fakeBot struct {
	mu      sync.Mutex
	sent    []sentMessage
	edits   []editedMessage
	answers []answeredCallback

	sendErr error
	editErr error
	fileErr error
}

func (f *fakeBot) SendMessage(_ context.Context, chatID int64, text string, cfg MessageConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMessage{ChatID: chatID, Text: text, Cfg: cfg})
	return nil
}

func (f *fakeBot) EditMessageText(_ context.Context, chatID int64, messageID int, text string, cfg MessageConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editErr != nil {
		return f.editErr
	}
	f.edits = append(f.edits, editedMessage{ChatID: chatID, MessageID: messageID, Text: text, Cfg: cfg})
	return nil
}

func (f *fakeBot) AnswerCallbackQuery(_ context.Context, id string, text string, showAlert bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, answeredCallback{ID: id, Text: text, Alert: showAlert})
	return nil
}

func (f *fakeBot) FileLink(_ context.Context, fileID string) (string, error) {
	if f.fileErr != nil {
		return "", f.fileErr
	}
	return "https://files.example/" + fileID, nil
}

func (f *fakeBot) sentTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	texts := make([]string, len(f.sent))
	for i, m := range f.sent {
		texts[i] = m.Text
	}
	return texts
}

func (f *fakeBot) lastSent() (sentMessage, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentMessage{}, false
	}
	return f.sent[len(f.sent)-1], true
}

func (f *fakeBot) lastEdit() (editedMessage, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.edits) == 0 {
		return editedMessage{}, false
	}
	return f.edits[len(f.edits)-1], true
}

type serverTimestampSentinel struct{}

type fakeStore struct {
	mu     sync.Mutex
	data   map[string]map[string]map[string]interface{}
	writes int
	addSeq int

	getErr  error
	setErr  error
	delErr  error
	addErr  error
	listErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]map[string]map[string]interface{})}
}

func (f *fakeStore) Get(_ context.Context, collection, docID string) (map[string]interface{}, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	doc, ok := f.data[collection][docID]
	if !ok {
		return nil, false, nil
	}
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out, true, nil
}

func (f *fakeStore) SetMerge(_ context.Context, collection, docID string, data map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	if f.data[collection] == nil {
		f.data[collection] = make(map[string]map[string]interface{})
	}
	doc := f.data[collection][docID]
	if doc == nil {
		doc = make(map[string]interface{})
		f.data[collection][docID] = doc
	}
	for k, v := range data {
		doc[k] = resolveTimestamp(v)
	}
	f.writes++
	return nil
}

func (f *fakeStore) Delete(_ context.Context, collection, docID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.data[collection], docID)
	return nil
}

func (f *fakeStore) Add(_ context.Context, collection string, data map[string]interface{}) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return "", f.addErr
	}
	if f.data[collection] == nil {
		f.data[collection] = make(map[string]map[string]interface{})
	}
	f.addSeq++
	id := fmt.Sprintf("gen-%d", f.addSeq)
	doc := make(map[string]interface{}, len(data))
	for k, v := range data {
		doc[k] = resolveTimestamp(v)
	}
	f.data[collection][id] = doc
	f.writes++
	return id, nil
}

func (f *fakeStore) ListRecent(_ context.Context, collection, orderBy string, limit int) ([]Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	docs := make([]Document, 0, len(f.data[collection]))
	for id, doc := range f.data[collection] {
		docs = append(docs, Document{ID: id, Data: doc})
	}
	sort.Slice(docs, func(i, j int) bool {
		ti, _ := docs[i].Data[orderBy].(time.Time)
		tj, _ := docs[j].Data[orderBy].(time.Time)
		return ti.After(tj)
	})
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func (f *fakeStore) ServerTimestamp() interface{} {
	return serverTimestampSentinel{}
}

func resolveTimestamp(v interface{}) interface{} {
	if _, ok := v.(serverTimestampSentinel); ok {
		return time.Now()
	}
	return v
}

func (f *fakeStore) doc(collection, docID string) (map[string]interface{}, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.data[collection][docID]
	return doc, ok
}

func (f *fakeStore) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

const (
	testOperatorID = int64(424242)
	testChatID     = int64(424242)
	strangerID     = int64(666)
)

func newTestClient() (*Client, *fakeBot, *fakeStore) {
	api := &fakeBot{}
	store := newFakeStore()
	c := newClient(testOperatorID, api, store, zerolog.Nop())
	c.deleteDelay = 0
	c.flowDelay = 0
	return c, api, store
}

func operatorMessage(text string) *Update {
	return &Update{Message: &Message{
		MessageID: 10,
		Chat:      Chat{ID: testChatID, Type: "private"},
		From:      &MessageSender{ID: testOperatorID},
		Text:      text,
	}}
}

func operatorPhoto(fileIDs ...string) *Update {
	msg := &Message{
		MessageID: 11,
		Chat:      Chat{ID: testChatID, Type: "private"},
		From:      &MessageSender{ID: testOperatorID},
	}
	for i, id := range fileIDs {
		msg.Photo = append(msg.Photo, PhotoSize{FileID: id, Width: 100 * (i + 1), Height: 100 * (i + 1)})
	}
	return &Update{Message: msg}
}

func operatorCallback(data string) *Update {
	return &Update{CallbackQuery: &CallbackQuery{
		ID:   "cb-1",
		Data: data,
		From: &MessageSender{ID: testOperatorID},
		Message: &Message{
			MessageID: 20,
			Chat:      Chat{ID: testChatID, Type: "private"},
		},
	}}
}
