package kontenbot

import "github.com/rs/zerolog"

// CatalogEntry is one selectable item: document key plus display name.
type CatalogEntry struct {
	ID   string
	Name string
}

// Catalog is an ordered enumeration; menus render in this order.
type Catalog []CatalogEntry

func (c Catalog) Name(id string) (string, bool) {
	for _, entry := range c {
		if entry.ID == id {
			return entry.Name, true
		}
	}
	return "", false
}

var paymentMethods = Catalog{
	{ID: "dana", Name: "Dana"},
	{ID: "gopay", Name: "GoPay"},
	{ID: "ovo", Name: "OVO"},
	{ID: "bca", Name: "BCA"},
	{ID: "qris", Name: "QRIS"},
}

var socialMedia = Catalog{
	{ID: "instagram", Name: "Instagram"},
	{ID: "facebook", Name: "Facebook"},
	{ID: "telegram", Name: "Telegram"},
	{ID: "whatsapp", Name: "WhatsApp"},
	{ID: "youtube", Name: "YouTube"},
	{ID: "tiktok", Name: "TikTok"},
	{ID: "twitter", Name: "Twitter (X)"},
	{ID: "linkedin", Name: "LinkedIn"},
}

// mergeDisplayNames builds the id→name lookup once at startup. Earlier
// catalogs take precedence; a duplicate id is kept from the first catalog
// that defined it and logged, since it would otherwise be shadowed silently.
func mergeDisplayNames(logger zerolog.Logger, catalogs ...Catalog) map[string]string {
	names := make(map[string]string)
	for _, catalog := range catalogs {
		for _, entry := range catalog {
			if existing, ok := names[entry.ID]; ok {
				logger.Warn().
					Str("id", entry.ID).
					Str("kept", existing).
					Str("ignored", entry.Name).
					Msg("duplicate catalog id")
				continue
			}
			names[entry.ID] = entry.Name
		}
	}
	return names
}
