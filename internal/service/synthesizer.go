// synthesizer.go — подключаемый синтез речи. Встроенная реализация — mock:
// фиксированная задержка и статическая таблица голос → язык → URL.
package service

import (
	"context"
	"maps"
	"slices"
	"time"
)

// PlaceholderURL — URL-заглушка для нераспознанного голоса.
const PlaceholderURL = "/placeholder.mp3"

// fallbackLanguage — язык, на который откатывается голос без нужного языка.
const fallbackLanguage = "english"

// SynthesisRequest — запрос синтеза.
type SynthesisRequest struct {
	Text     string
	Voice    string
	Language string
}

// Synthesizer — бэкенд синтеза речи. Возвращает URL готового аудио.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (string, error)
}

// VoiceTable — неизменяемая таблица голос → язык → URL.
type VoiceTable struct {
	voices map[string]map[string]string
}

// NewVoiceTable копирует m, последующие изменения m на таблицу не влияют.
func NewVoiceTable(m map[string]map[string]string) VoiceTable {
	voices := make(map[string]map[string]string, len(m))
	for voice, langs := range m {
		cp := make(map[string]string, len(langs))
		for lang, u := range langs {
			cp[lang] = u
		}
		voices[voice] = cp
	}
	return VoiceTable{voices: voices}
}

// DefaultVoiceTable — встроенные голоса демо.
func DefaultVoiceTable() VoiceTable {
	codes := map[string]string{
		"english": "en",
		"spanish": "es",
		"french":  "fr",
		"german":  "de",
	}
	m := make(map[string]map[string]string)
	for _, voice := range []string{"samara", "spuds", "jessica", "announcer", "sergeant"} {
		m[voice] = make(map[string]string, len(codes))
		for lang, code := range codes {
			m[voice][lang] = PlaceholderURL + "?voice=" + voice + "&lang=" + code
		}
	}
	return NewVoiceTable(m)
}

// Resolve возвращает URL для пары (voice, language): точное совпадение,
// затем английский вариант голоса, затем PlaceholderURL.
func (t VoiceTable) Resolve(voice, language string) string {
	langs, ok := t.voices[voice]
	if !ok {
		return PlaceholderURL
	}
	if u, ok := langs[language]; ok {
		return u
	}
	if u, ok := langs[fallbackLanguage]; ok {
		return u
	}
	return PlaceholderURL
}

// Voices возвращает число голосов в таблице.
func (t VoiceTable) Voices() int {
	return len(t.voices)
}

// Names возвращает имена голосов в алфавитном порядке.
func (t VoiceTable) Names() []string {
	return slices.Sorted(maps.Keys(t.voices))
}

// MockSynthesizer имитирует задержку реального синтеза и берёт URL из таблицы.
type MockSynthesizer struct {
	table VoiceTable
	delay time.Duration
	sleep func(time.Duration)
}

// NewMockSynthesizer создаёт mock-синтезатор.
func NewMockSynthesizer(table VoiceTable, delay time.Duration) *MockSynthesizer {
	return &MockSynthesizer{
		table: table,
		delay: delay,
		sleep: time.Sleep,
	}
}

// Synthesize ждёт фиксированную задержку (не прерывается отменой контекста)
// и возвращает URL из таблицы.
func (m *MockSynthesizer) Synthesize(_ context.Context, req SynthesisRequest) (string, error) {
	if m.delay > 0 {
		m.sleep(m.delay)
	}
	return m.table.Resolve(req.Voice, req.Language), nil
}
