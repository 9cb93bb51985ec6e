package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint контентный отпечаток набора данных.
// Идентичность каталога определяется содержимым, а не идентичностью объекта:
// две загрузки с одинаковыми данными получают одинаковый отпечаток и
// переиспользуют кэшированные базовые показатели.
func (v *View) Fingerprint() string {
	h := sha256.New()
	for _, r := range v.records {
		fmt.Fprintf(h, "%s|%s|%s|%g|%g|%g|%g|%d|%g|%g|%d\n",
			r.ArticleCode, r.Material, r.CutType,
			r.ThicknessMicrons, r.KerfWidthMicrons,
			r.HubDiameterMm, r.OuterDiameterMm, r.GrainSize,
			r.ChippingMicrons, r.CutRateMmPerMin, r.LifespanCuts,
		)
	}
	return hex.EncodeToString(h.Sum(nil))
}
