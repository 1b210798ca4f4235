package kontenbot

import (
	"context"
	"fmt"
	"strings"
)

// handleCallback routes a button press by its payload. Store errors are
// caught here, logged, and surfaced as the generic failure message; the
// screen is not rolled back.
func (c *Client) handleCallback(ctx context.Context, s *Session, query *CallbackQuery) {
	parts := strings.SplitN(query.Data, "_", 3)
	if len(parts) < 2 {
		s.log.Debug().Str("data", query.Data).Msg("malformed callback payload")
		return
	}
	action, collection := parts[0], parts[1]
	docID := ""
	if len(parts) == 3 {
		docID = parts[2]
	}

	var err error
	switch action {
	case actionMenu:
		err = c.handleMenuNav(ctx, s, query.Message, collection)
	case actionView:
		err = c.handleView(ctx, s, query.Message, collection, docID)
	case actionAdd, actionEdit:
		err = c.startFlow(ctx, s, FlowAction(action), collection, docID)
	case actionDelete:
		err = c.handleDelete(ctx, s, query.Message, collection, docID)
	case actionList:
		err = c.handleTestimonialList(ctx, s, query.Message)
	default:
		s.log.Debug().Str("data", query.Data).Msg("unknown callback action")
	}

	if err != nil {
		s.log.Error().Err(err).Str("data", query.Data).Msg("callback handling failed")
		s.SendText(ctx, internalErrorText)
	}
}

func (c *Client) handleMenuNav(ctx context.Context, s *Session, message *Message, collection string) error {
	switch collection {
	case colMain:
		c.sendMainMenu(ctx, s, message.MessageID)
	case colPayment:
		s.EditText(ctx, message.MessageID, paymentMenuText, MessageConfig{
			ReplyMarkup: renderMenu(paymentMethods, colPayment),
		})
	case colSocial:
		s.EditText(ctx, message.MessageID, socialMenuText, MessageConfig{
			ReplyMarkup: renderMenu(socialMedia, colSocial),
		})
	case colTestimonial:
		s.EditText(ctx, message.MessageID, testimonialsText, MessageConfig{
			ReplyMarkup: testimonialMenuMarkup(),
		})
	default:
		s.log.Debug().Str("collection", collection).Msg("unknown menu target")
	}
	return nil
}

func (c *Client) handleView(ctx context.Context, s *Session, message *Message, collection, docID string) error {
	data, exists, err := c.store.Get(ctx, collection, docID)
	if err != nil {
		return fmt.Errorf("get %s/%s: %w", collection, docID, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Mengelola: *%s*\n\n", c.displayName(docID, docID))

	if exists {
		b.WriteString("Data saat ini:\n")
		switch {
		case collection == colPayment && docID == "qris":
			fmt.Fprintf(&b, "Link Gambar: [Lihat Disini](%s)", firstString(data, "gambar_qris"))
		case collection == colPayment:
			fmt.Fprintf(&b, "Nomor: `%s`\n", firstString(data, "nomor", "nomor_rekening"))
			fmt.Fprintf(&b, "Pemilik: `%s`", firstString(data, "pemilik", "nama_pemilik"))
		case collection == colSocial:
			fmt.Fprintf(&b, "Link: `%s`", firstString(data, "link"))
		case collection == colTestimonial:
			fmt.Fprintf(&b, "Nama: `%s`\n", firstString(data, "nama"))
			fmt.Fprintf(&b, "Isi: %s\n", firstString(data, "isi"))
			fmt.Fprintf(&b, "Foto: [Lihat Disini](%s)", firstString(data, "foto"))
		}
	} else {
		b.WriteString("Data belum ada di database.")
	}

	s.EditText(ctx, message.MessageID, b.String(), MessageConfig{
		ParseMode:   ParseModeMarkdown,
		ReplyMarkup: viewMarkup(collection, docID, exists),
	})
	return nil
}

// startFlow initializes the chat's conversation state with the first step of
// the selected flow and sends the first prompt. Any prior state for the chat
// is overwritten.
func (c *Client) startFlow(ctx context.Context, s *Session, action FlowAction, collection, docID string) error {
	state := &ConversationState{Action: action, Collection: collection, DocID: docID}
	name := c.displayName(docID, "Testimoni")

	var prompt string
	switch {
	case docID == "qris":
		state.Step = stepQRISPhoto
		prompt = fmt.Sprintf("Silakan kirim gambar Kode QRIS yang baru untuk %s.", name)
	case collection == colPayment:
		state.Step = stepPaymentNumber
		prompt = fmt.Sprintf("Masukkan nomor baru untuk %s:", name)
	case collection == colSocial:
		state.Step = stepSocialLink
		prompt = fmt.Sprintf("Masukkan link baru untuk %s:", name)
	case collection == colTestimonial:
		state.Step = stepTestimonialPhoto
		prompt = "Silakan kirim foto untuk testimoni baru:"
	default:
		s.log.Debug().Str("collection", collection).Msg("flow start for unknown collection")
		return nil
	}

	c.states.Set(s.ChatID, state)
	s.SendText(ctx, prompt)
	return nil
}

func (c *Client) handleDelete(ctx context.Context, s *Session, message *Message, collection, docID string) error {
	if err := c.store.Delete(ctx, collection, docID); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, docID, err)
	}

	text := fmt.Sprintf("✅ Data *%s* berhasil dihapus.", c.displayName(docID, docID))
	s.EditText(ctx, message.MessageID, text, MessageConfig{ParseMode: ParseModeMarkdown})
	c.scheduleMainMenu(s, c.deleteDelay)
	return nil
}

func (c *Client) handleTestimonialList(ctx context.Context, s *Session, message *Message) error {
	docs, err := c.store.ListRecent(ctx, colTestimonial, "tanggal", 5)
	if err != nil {
		return fmt.Errorf("list %s: %w", colTestimonial, err)
	}

	text := "Pilih testimoni untuk dikelola:"
	if len(docs) == 0 {
		text = "Belum ada testimoni di database."
	}
	s.EditText(ctx, message.MessageID, text, MessageConfig{
		ReplyMarkup: testimonialListMarkup(docs),
	})
	return nil
}

func firstString(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
