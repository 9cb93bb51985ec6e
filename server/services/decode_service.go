package services

import (
	"log/slog"

	"dicingserver/decoder"
	"dicingserver/importer"
	apperrors "dicingserver/server/errors"
	"dicingserver/server/types"
)

// DecodeService расшифровывает артикулы дисков
type DecodeService struct {
	decoder *decoder.Decoder
}

// NewDecodeService создает сервис расшифровки.
// Если задан путь к CSV условных обозначений, грамматика загружается из
// него; иначе используется встроенная.
func NewDecodeService(grammarPath string) (*DecodeService, error) {
	var grammar *decoder.Grammar
	if grammarPath != "" {
		loaded, err := importer.LoadGrammarCSV(grammarPath)
		if err != nil {
			return nil, apperrors.NewInternalError("не удалось загрузить грамматику артикулов", err)
		}
		grammar = loaded
		slog.Info("грамматика артикулов загружена", "path", grammarPath, "segments", grammar.SegmentCount())
	}
	return &DecodeService{decoder: decoder.NewDecoder(grammar)}, nil
}

// Decode расшифровывает один артикул
func (s *DecodeService) Decode(code string) (decoder.DiscSpec, error) {
	if code == "" {
		return decoder.DiscSpec{}, apperrors.NewValidationError("артикул не задан", nil)
	}
	return s.decoder.Decode(code)
}

// DecodeBatch расшифровывает пакет артикулов.
// Ошибки отдельных артикулов не прерывают пакет.
func (s *DecodeService) DecodeBatch(codes []string) []types.BatchDecodeItem {
	results := s.decoder.DecodeBatch(codes)
	out := make([]types.BatchDecodeItem, 0, len(results))
	for _, r := range results {
		item := types.BatchDecodeItem{Code: r.Code}
		if r.Err != nil {
			item.Error = r.Err.Error()
		} else {
			spec := r.Spec
			item.Spec = &spec
		}
		out = append(out, item)
	}
	return out
}

// Validate проверяет, соответствует ли артикул грамматике
func (s *DecodeService) Validate(code string) bool {
	return s.decoder.Validate(code)
}

// Encode восстанавливает артикул из расшифровки
func (s *DecodeService) Encode(spec decoder.DiscSpec) (string, error) {
	return s.decoder.Encode(spec)
}
