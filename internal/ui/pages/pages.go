// Пакет pages — templ-компоненты страниц PanelVoices:
// маркетинговая страница (/) и страница загрузки образцов (/upload-audio).
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bigkaa/panelvoices/internal/domain/model"
	"github.com/bigkaa/panelvoices/internal/ui/i18n"
)

// Translator переводит ключ на язык из контекста.
type Translator func(ctx context.Context, key string) string

// HomeData — данные главной страницы.
type HomeData struct {
	Voices    []string
	Languages []model.Language
	// Selected — язык, выбранный по умолчанию (из Accept-Language)
	Selected model.Language
}

// UploadData — данные страницы загрузки.
type UploadData struct {
	Languages []model.Language
	Selected  model.Language
}

// htmlWriter накапливает первую ошибку записи.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

// text записывает экранированный текст.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// htmlLang — значение атрибута lang.
func htmlLang(l model.Language) string {
	if l == model.LanguageArabic {
		return "ar"
	}
	return "en"
}

// Layout — общий каркас страницы. titleKey — ключ перевода заголовка.
func Layout(t Translator, titleKey, script string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := i18n.FromContext(ctx)
		h := &htmlWriter{w: w}

		h.raw(`<!DOCTYPE html><html lang="`, htmlLang(lang), `" dir="`, i18n.Dir(lang), `"><head>`)
		h.raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(t(ctx, titleKey))
		h.raw(` · `)
		h.text(t(ctx, "app.title"))
		h.raw(`</title><link rel="stylesheet" href="/static/css/app.css"></head><body>`)

		h.raw(`<header><strong>`)
		h.text(t(ctx, "app.title"))
		h.raw(`</strong><nav><a href="/">`)
		h.text(t(ctx, "nav.home"))
		h.raw(`</a><a href="/upload-audio">`)
		h.text(t(ctx, "nav.upload"))
		h.raw(`</a></nav></header><main>`)
		if h.err != nil {
			return h.err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		h.raw(`</main><script src="/static/js/`, script, `" defer></script></body></html>`)
		return h.err
	})
}

// languageSelect — выпадающий список языков с выбранным значением.
func languageSelect(ctx context.Context, h *htmlWriter, t Translator, langs []model.Language, selected model.Language) {
	h.raw(`<label>`)
	h.text(t(ctx, "home.language"))
	h.raw(`<select name="language">`)
	for _, l := range langs {
		h.raw(`<option value="`)
		h.text(l.String())
		h.raw(`"`)
		if l == selected {
			h.raw(` selected`)
		}
		h.raw(`>`)
		h.text(t(ctx, "lang."+l.String()))
		h.raw(`</option>`)
	}
	h.raw(`</select></label>`)
}

// dataAttr записывает data-атрибут с экранированным значением.
func dataAttr(h *htmlWriter, name, value string) {
	h.raw(` data-`, name, `="`)
	h.text(value)
	h.raw(`"`)
}

// Home — маркетинговая страница: голос, язык, текст, воспроизведение.
func Home(t Translator, data HomeData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<section class="hero"><h1>`)
		h.text(t(ctx, "app.title"))
		h.raw(`</h1><p>`)
		h.text(t(ctx, "app.tagline"))
		h.raw(`</p></section>`)

		h.raw(`<form id="tts-form" class="panel"`)
		dataAttr(h, "generating", t(ctx, "home.generating"))
		dataAttr(h, "not-found", t(ctx, "home.not_found"))
		dataAttr(h, "placeholder", t(ctx, "home.text_placeholder"))
		h.raw(`><div class="row"><label>`)
		h.text(t(ctx, "home.voice"))
		h.raw(`<select name="voice">`)
		title := cases.Title(language.English)
		for _, v := range data.Voices {
			h.raw(`<option value="`)
			h.text(v)
			h.raw(`">`)
			h.text(title.String(v))
			h.raw(`</option>`)
		}
		h.raw(`</select></label>`)
		languageSelect(ctx, h, t, data.Languages, data.Selected)
		h.raw(`</div>`)

		h.raw(`<label>`)
		h.text(t(ctx, "home.text"))
		h.raw(`<textarea name="text" placeholder="`)
		h.text(t(ctx, "home.text_placeholder"))
		h.raw(`"></textarea></label>`)

		h.raw(`<div class="actions"><button id="play" type="submit">`)
		h.text(t(ctx, "home.play"))
		h.raw(`</button><a id="download" class="button" download hidden>`)
		h.text(t(ctx, "home.download"))
		h.raw(`</a><span id="status" class="status"></span></div>`)
		h.raw(`<audio id="player" controls preload="none" hidden></audio></form>`)

		return h.err
	})
	return Layout(t, "nav.home", "app.js", body)
}

// Upload — страница загрузки образца и каталог загруженного.
func Upload(t Translator, data UploadData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<form id="upload-form" class="panel" enctype="multipart/form-data"`)
		dataAttr(h, "done", t(ctx, "upload.done"))
		dataAttr(h, "failed", t(ctx, "upload.failed"))
		h.raw(`><h2>`)
		h.text(t(ctx, "upload.title"))
		h.raw(`</h2><div class="row"><label>`)
		h.text(t(ctx, "upload.file"))
		h.raw(`<input type="file" name="file" accept="audio/*" required></label>`)
		languageSelect(ctx, h, t, data.Languages, data.Selected)
		h.raw(`</div><div class="actions"><button type="submit">`)
		h.text(t(ctx, "upload.submit"))
		h.raw(`</button><span id="status" class="status"></span></div></form>`)

		h.raw(`<section class="panel"><h2>`)
		h.text(t(ctx, "upload.catalog"))
		h.raw(`</h2><p>`)
		h.text(t(ctx, "upload.total"))
		h.raw(`: <span id="catalog-total">0</span></p><table><tbody id="catalog-rows"><tr><td>`)
		h.text(t(ctx, "upload.empty"))
		h.raw(`</td></tr></tbody></table></section>`)

		return h.err
	})
	return Layout(t, "nav.upload", "upload.js", body)
}
