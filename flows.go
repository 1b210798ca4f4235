package kontenbot

import (
	"context"
	"fmt"
	"strings"
)

// handleText advances a text-awaiting step. Messages with no active flow,
// command-prefixed text, and text arriving while a photo is awaited are all
// ignored without touching state.
func (c *Client) handleText(ctx context.Context, s *Session, message *Message) {
	state, ok := c.states.Get(s.ChatID)
	if !ok || message.IsCommand() {
		return
	}

	text := message.Text
	var err error

	switch state.Step {
	case stepPaymentNumber:
		state.Number = text
		state.Step = stepPaymentOwner
		c.states.Set(s.ChatID, state)
		s.SendText(ctx, fmt.Sprintf("Nomor disimpan. Masukkan nama pemilik (a.n.) untuk %s:", strings.ToUpper(state.DocID)))

	case stepPaymentOwner:
		err = c.persistPayment(ctx, s, state, text)

	case stepSocialLink:
		err = c.persistSocial(ctx, s, state, text)

	case stepTestimonialName:
		state.Name = text
		state.Step = stepTestimonialBody
		c.states.Set(s.ChatID, state)
		s.SendText(ctx, fmt.Sprintf("Nama disimpan. Masukkan isi testimoni dari %s:", text))

	case stepTestimonialBody:
		err = c.persistTestimonial(ctx, s, state, text)
	}

	if err != nil {
		s.log.Error().Err(err).Str("step", state.Step).Msg("flow step failed")
		c.states.Clear(s.ChatID)
		s.SendText(ctx, saveFailedText)
	}
}

// handlePhoto advances a photo-awaiting step. The highest-resolution variant
// is resolved to a download link before being stored.
func (c *Client) handlePhoto(ctx context.Context, s *Session, message *Message) {
	state, ok := c.states.Get(s.ChatID)
	if !ok {
		return
	}

	switch state.Step {
	case stepQRISPhoto, stepTestimonialPhoto:
	default:
		// Awaiting text; a photo here is ignored.
		return
	}

	photo, ok := message.LargestPhoto()
	if !ok {
		return
	}

	link, err := c.bot.FileLink(ctx, photo.FileID)
	if err == nil && state.Step == stepQRISPhoto {
		err = c.persistQRIS(ctx, s, link)
	}
	if err != nil {
		s.log.Error().Err(err).Str("step", state.Step).Msg("photo step failed")
		c.states.Clear(s.ChatID)
		s.SendText(ctx, photoFailedText)
		return
	}

	if state.Step == stepTestimonialPhoto {
		state.PhotoLink = link
		state.Step = stepTestimonialName
		c.states.Set(s.ChatID, state)
		s.SendText(ctx, "✅ Foto diterima. Sekarang, masukkan nama pelanggan:")
	}
}

func (c *Client) persistQRIS(ctx context.Context, s *Session, link string) error {
	err := c.store.SetMerge(ctx, colPayment, "qris", map[string]interface{}{
		"tipe":        "qris",
		"gambar_qris": link,
	})
	if err != nil {
		return fmt.Errorf("persist qris: %w", err)
	}

	c.states.Clear(s.ChatID)
	s.SendText(ctx, "✅ Gambar QRIS berhasil diperbarui!")
	c.scheduleMainMenu(s, c.flowDelay)
	return nil
}

// persistPayment writes the completed payment record. BCA keeps its legacy
// field names; every other method uses the generic pair.
func (c *Client) persistPayment(ctx context.Context, s *Session, state *ConversationState, owner string) error {
	numberField, ownerField := "nomor", "pemilik"
	if state.DocID == "bca" {
		numberField, ownerField = "nomor_rekening", "nama_pemilik"
	}

	err := c.store.SetMerge(ctx, state.Collection, state.DocID, map[string]interface{}{
		"tipe":      state.DocID,
		numberField: state.Number,
		ownerField:  owner,
	})
	if err != nil {
		return fmt.Errorf("persist payment %s: %w", state.DocID, err)
	}

	c.states.Clear(s.ChatID)
	s.SendText(ctx, fmt.Sprintf("✅ Data %s berhasil diperbarui!", strings.ToUpper(state.DocID)))
	c.scheduleMainMenu(s, c.flowDelay)
	return nil
}

func (c *Client) persistSocial(ctx context.Context, s *Session, state *ConversationState, link string) error {
	name, ok := socialMedia.Name(state.DocID)
	if !ok {
		name = strings.ToUpper(state.DocID)
	}

	err := c.store.SetMerge(ctx, state.Collection, state.DocID, map[string]interface{}{
		"nama": name,
		"link": link,
	})
	if err != nil {
		return fmt.Errorf("persist social %s: %w", state.DocID, err)
	}

	c.states.Clear(s.ChatID)
	s.SendText(ctx, fmt.Sprintf("✅ Link untuk %s berhasil diperbarui!", strings.ToUpper(state.DocID)))
	c.scheduleMainMenu(s, c.flowDelay)
	return nil
}

// persistTestimonial completes the photo→name→body flow. A new testimonial
// is added under a generated id with a server-assigned creation timestamp;
// editing an existing one merges into its document and keeps the original
// timestamp.
func (c *Client) persistTestimonial(ctx context.Context, s *Session, state *ConversationState, body string) error {
	var err error
	if state.Action == FlowEdit && state.DocID != "" && state.DocID != "new" {
		err = c.store.SetMerge(ctx, colTestimonial, state.DocID, map[string]interface{}{
			"nama": state.Name,
			"isi":  body,
			"foto": state.PhotoLink,
		})
	} else {
		_, err = c.store.Add(ctx, colTestimonial, map[string]interface{}{
			"nama":    state.Name,
			"isi":     body,
			"foto":    state.PhotoLink,
			"tanggal": c.store.ServerTimestamp(),
		})
	}
	if err != nil {
		return fmt.Errorf("persist testimonial: %w", err)
	}

	c.states.Clear(s.ChatID)
	s.SendText(ctx, fmt.Sprintf("🎉 Testimoni dari %s berhasil ditambahkan!", state.Name))
	c.scheduleMainMenu(s, c.flowDelay)
	return nil
}
