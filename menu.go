package kontenbot

import "fmt"

const (
	mainMenuText       = "Selamat datang, Admin! Pilih menu untuk mengelola konten website:"
	paymentMenuText    = "Pilih metode pembayaran untuk dikelola:"
	socialMenuText     = "Pilih akun sosial untuk dikelola:"
	testimonialsText   = "Pilih aksi untuk testimoni:"
	backToMainLabel    = "« Kembali ke Menu Utama"
	backLabel          = "« Kembali"
	deniedText         = "⛔ Anda tidak diizinkan menggunakan bot ini."
	deniedCallbackText = "Akses ditolak."
	internalErrorText  = "Terjadi kesalahan internal saat memproses permintaan Anda."
	saveFailedText     = "Gagal menyimpan data. Silakan coba lagi."
	photoFailedText    = "Gagal memproses foto. Silakan coba lagi."
)

func payload(action, collection, docID string) string {
	return fmt.Sprintf("%s_%s_%s", action, collection, docID)
}

// Navigation payloads carry no document id: menu_main, menu_pembayaran, ...
func menuPayload(collection string) string {
	return fmt.Sprintf("%s_%s", actionMenu, collection)
}

// renderMenu builds one button per catalog entry, in catalog order, plus the
// back-to-main row. Payloads are view_{prefix}_{id}.
func renderMenu(catalog Catalog, prefix string) *InlineKeyboardMarkup {
	rows := make([][]InlineKeyboardButton, 0, len(catalog)+1)
	for _, entry := range catalog {
		rows = append(rows, []InlineKeyboardButton{
			{Text: entry.Name, CallbackData: payload(actionView, prefix, entry.ID)},
		})
	}
	rows = append(rows, []InlineKeyboardButton{
		{Text: backToMainLabel, CallbackData: menuPayload(colMain)},
	})
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

func mainMenuMarkup() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{{Text: "💳 Kelola Pembayaran", CallbackData: menuPayload(colPayment)}},
		{{Text: "⭐ Kelola Testimoni", CallbackData: menuPayload(colTestimonial)}},
		{{Text: "🔗 Kelola Akun Sosial", CallbackData: menuPayload(colSocial)}},
	}}
}

func testimonialMenuMarkup() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{{Text: "➕ Tambah Testimoni Baru", CallbackData: payload(actionAdd, colTestimonial, "new")}},
		{{Text: "🧾 Lihat Testimoni Terbaru", CallbackData: payload(actionList, colTestimonial, "recent")}},
		{{Text: backToMainLabel, CallbackData: menuPayload(colMain)}},
	}}
}

// viewMarkup is the edit/delete (or add) keyboard under a document view.
func viewMarkup(collection, docID string, exists bool) *InlineKeyboardMarkup {
	var rows [][]InlineKeyboardButton
	if exists {
		rows = [][]InlineKeyboardButton{
			{{Text: "🔄 Perbarui", CallbackData: payload(actionEdit, collection, docID)}},
			{{Text: "❌ Hapus", CallbackData: payload(actionDelete, collection, docID)}},
		}
	} else {
		rows = [][]InlineKeyboardButton{
			{{Text: "➕ Tambahkan", CallbackData: payload(actionAdd, collection, docID)}},
		}
	}
	rows = append(rows, []InlineKeyboardButton{
		{Text: backLabel, CallbackData: menuPayload(collection)},
	})
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

// testimonialListMarkup renders one button per recent testimonial, labelled
// by customer name, leading to the standard view screen.
func testimonialListMarkup(docs []Document) *InlineKeyboardMarkup {
	rows := make([][]InlineKeyboardButton, 0, len(docs)+1)
	for _, doc := range docs {
		label, _ := doc.Data["nama"].(string)
		if label == "" {
			label = doc.ID
		}
		rows = append(rows, []InlineKeyboardButton{
			{Text: label, CallbackData: payload(actionView, colTestimonial, doc.ID)},
		})
	}
	rows = append(rows, []InlineKeyboardButton{
		{Text: backLabel, CallbackData: menuPayload(colTestimonial)},
	})
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}
