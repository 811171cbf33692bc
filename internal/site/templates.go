package site

// shellTemplate is the html/template for every page of the site. Index
// pages carry the filter form; the grid container is mounted into <main>
// by the controller.
const shellTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta name="generator" content="aidir">
  {{- if .BuildID}}
  <meta name="aidir-build" content="{{.BuildID}}">
  {{- end}}
  {{- if .Description}}
  <meta name="description" content="{{.Description}}">
  {{- end}}
  <title>{{if .Title}}{{.Title}} · {{end}}{{.SiteName}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body data-base="{{.BasePath}}" data-lang-base="{{.LangBase}}">
  <header class="site-header">
    <div class="brand">
      <a href="{{.LangBase}}index.html" class="site-name">{{.SiteName}}</a>
      <p class="tagline" data-i18n="site.tagline">{{call .T "site.tagline"}}</p>
    </div>
    <nav class="site-nav">
      {{- range .Nav}}
      <a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Title}}</a>
      {{- end}}
      <a class="lang-toggle" href="{{.AltLangURL}}" hreflang="{{.AltLang}}" data-lang="{{.AltLang}}" data-i18n="lang.toggle">{{call .T "lang.toggle"}}</a>
      <button class="theme-toggle" id="theme-toggle" type="button" aria-label="Toggle theme">&#9680;</button>
    </nav>
  </header>
  <main id="main" class="content">
  {{- if .Index}}
    <form class="filters" method="get" action="{{.FormAction}}" role="search">
      <input type="search" name="q" value="{{.Query}}" data-i18n-placeholder="search.placeholder" placeholder="{{call .T "search.placeholder"}}" autocomplete="off">
      <select name="category">
        <option value="" data-i18n="filter.all">{{call .T "filter.all"}}</option>
        {{- range .Categories}}
        <option value="{{.Value}}"{{if .Selected}} selected{{end}} data-i18n="{{.Key}}">{{.Label}}</option>
        {{- end}}
      </select>
      <label class="free-filter"><input type="checkbox" name="free" value="1"{{if .FreeOnly}} checked{{end}}> <span data-i18n="filter.free">{{call .T "filter.free"}}</span></label>
      <button type="submit" data-i18n="filter.apply">{{call .T "filter.apply"}}</button>
    </form>
    <p class="grid-count"><span class="count">{{.Count}}</span> <span data-i18n="grid.count">{{call .T "grid.count"}}</span></p>
    <p class="grid-empty" data-i18n="grid.empty"{{if .Count}} hidden{{end}}>{{call .T "grid.empty"}}</p>
  {{- else}}
    <article class="page-content">
      {{.Content}}
    </article>
  {{- end}}
  </main>
  <footer class="site-footer">
    {{- if .LastUpdated}}
    <span data-i18n="footer.updated">{{call .T "footer.updated"}}</span>: <time datetime="{{.LastUpdated}}">{{.LastUpdated}}</time>
    {{- end}}
  </footer>
  <script src="{{.BasePath}}script.js"></script>
  {{- if .LiveReload}}
  <script>
  (function() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "/ws/reload");
    ws.onmessage = function() { location.reload(); };
  })();
  </script>
  {{- end}}
</body>
</html>`

// cardFrontTemplate renders the front faces of grid cards. The data-*
// attributes are the fallback record used when a card's tool is missing
// from the catalog.
const cardFrontTemplate = `{{range .}}<div class="tool-card" data-id="{{.ID}}" data-name="{{.Title}}" data-category="{{.Category}}"{{if .Link}} data-link="{{.Link}}"{{end}}{{if .IsFree}} data-free="true"{{end}}><div class="card-header"><span class="category-dot" style="{{.DotStyle}}"></span><span class="category-label" data-i18n="{{.CategoryKey}}">{{.CategoryName}}</span></div><h3 class="tool-title">{{.Title}}</h3><p class="tool-summary">{{.Summary}}</p><span class="card-hint" data-i18n="card.flip">{{.FlipLabel}}</span></div>{{end}}`

// toolTemplate is the body of a tool detail page.
const toolTemplate = `<article class="tool-detail" data-tool-id="{{.ID}}">
<a class="back-link" href="{{.BackURL}}" data-i18n="modal.back">{{call .T "modal.back"}}</a>
<h1 class="tool-title">{{.Title}}</h1>
<div class="card-badges"><span class="category-badge" data-category="{{.Category}}" data-i18n="{{.CategoryKey}}" style="{{.CategoryStyle}}">{{.CategoryName}}</span><span class="price-badge {{.PriceClass}}" data-i18n="{{.PriceKey}}" style="{{.PriceStyle}}">{{call .T .PriceKey}}</span></div>
<div class="tool-rating"><span class="stars" aria-hidden="true">{{.Stars}}</span> <span data-i18n="card.rating">{{call .T "card.rating"}}</span>: <span class="rating-value">{{.Rating}}</span> / 5</div>
<p class="tool-description"{{if .DescriptionKey}} data-i18n="{{.DescriptionKey}}"{{end}}>{{.Description}}</p>
{{- if .Details}}
<section class="tool-details">{{.Details}}</section>
{{- end}}
{{- if .Tags}}
<ul class="tool-tags">{{range .Tags}}<li class="tag">{{.}}</li>{{end}}</ul>
{{- end}}
{{- if .Link}}
<a class="tool-link" href="{{.Link}}" target="_blank" rel="noopener noreferrer" data-i18n="card.open">{{call .T "card.open"}}</a>
{{- end}}
{{- if .Added}}
<p class="tool-added"><time datetime="{{.Added}}">{{.Added}}</time></p>
{{- end}}
<template class="modal-source">{{.ModalDetail}}</template>
</article>`

// redirectPage maps the static /tool.html?id=<id> URL onto the pre-rendered
// tools/<id>.html page.
const redirectPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Redirecting…</title>
  <script>
  (function() {
    var id = new URLSearchParams(location.search).get("id");
    location.replace(id ? "tools/" + encodeURIComponent(id) + ".html" : "index.html");
  })();
  </script>
</head>
<body><noscript><a href="index.html">index.html</a></noscript></body>
</html>
`

// cssContent is the stylesheet of the site.
const cssContent = `/* ============ CSS Variables ============ */
:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --text: #212529;
  --text-secondary: #495057;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --accent-hover: #1c7ed6;
  --card-height: 320px;
  --content-max-width: 1200px;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
  --shadow-lg: 0 4px 12px rgba(0,0,0,0.1);
}

[data-theme="dark"] {
  --bg: #1a1b26;
  --bg-secondary: #1f2030;
  --text: #c0caf5;
  --text-secondary: #a9b1d6;
  --text-muted: #565f89;
  --border: #292e42;
  --accent: #7aa2f7;
  --accent-hover: #89b4fa;
  --shadow: 0 1px 3px rgba(0,0,0,0.3);
  --shadow-lg: 0 4px 12px rgba(0,0,0,0.4);
}

/* ============ Reset & Base ============ */
*, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.6;
}

body.no-scroll { overflow: hidden; }

a { color: var(--accent); text-decoration: none; }
a:hover { color: var(--accent-hover); }

/* ============ Header & Footer ============ */
.site-header {
  display: flex;
  align-items: center;
  justify-content: space-between;
  gap: 1rem;
  padding: 1rem 2rem;
  border-bottom: 1px solid var(--border);
  background: var(--bg-secondary);
}
.site-name { font-size: 1.4rem; font-weight: 700; color: var(--text); }
.tagline { color: var(--text-muted); font-size: 0.9rem; }
.site-nav { display: flex; align-items: center; gap: 1rem; }
.site-nav a.active { font-weight: 600; }
.theme-toggle { background: none; border: none; color: var(--text); cursor: pointer; font-size: 1.2rem; }
.site-footer { padding: 2rem; text-align: center; color: var(--text-muted); font-size: 0.85rem; }

.content { max-width: var(--content-max-width); margin: 0 auto; padding: 2rem; }

/* ============ Filters ============ */
.filters { display: flex; flex-wrap: wrap; gap: 0.75rem; margin-bottom: 1rem; }
.filters input[type="search"] { flex: 1 1 240px; padding: 0.5rem 0.75rem; border: 1px solid var(--border); border-radius: 6px; background: var(--bg); color: var(--text); }
.filters select, .filters button { padding: 0.5rem 0.75rem; border: 1px solid var(--border); border-radius: 6px; background: var(--bg); color: var(--text); }
.filters button { background: var(--accent); color: #fff; border-color: var(--accent); cursor: pointer; }
.grid-count, .grid-empty { color: var(--text-muted); margin-bottom: 1rem; }

/* ============ Card Grid ============ */
.tools-grid {
  display: grid;
  grid-template-columns: repeat(auto-fill, minmax(260px, 1fr));
  gap: 1.5rem;
}

.tool-card { height: var(--card-height); perspective: 1000px; cursor: pointer; }
.tool-card:focus { outline: 2px solid var(--accent); outline-offset: 2px; }

.card-inner {
  position: relative;
  width: 100%;
  height: 100%;
  transition: transform 0.5s;
  transform-style: preserve-3d;
}
.tool-card.flipped .card-inner { transform: rotateY(180deg); }

.card-front, .card-back {
  position: absolute;
  inset: 0;
  padding: 1.25rem;
  border: 1px solid var(--border);
  border-radius: 12px;
  background: var(--bg);
  box-shadow: var(--shadow);
  backface-visibility: hidden;
  overflow: hidden;
}
.card-back { transform: rotateY(180deg); display: flex; flex-direction: column; gap: 0.5rem; cursor: default; }

.card-header { display: flex; align-items: center; gap: 0.5rem; color: var(--text-muted); font-size: 0.85rem; }
.category-dot { width: 10px; height: 10px; border-radius: 50%; display: inline-block; }
.tool-title { margin: 0.75rem 0 0.5rem; font-size: 1.15rem; }
.tool-summary { color: var(--text-secondary); font-size: 0.9rem; }
.card-hint { position: absolute; bottom: 1rem; left: 1.25rem; color: var(--accent); font-size: 0.85rem; }

.card-close { position: absolute; top: 0.5rem; right: 0.75rem; background: none; border: none; font-size: 1.4rem; color: var(--text-muted); cursor: pointer; }
.card-badges { display: flex; gap: 0.5rem; flex-wrap: wrap; }
.category-badge, .price-badge { color: #fff; border-radius: 999px; padding: 0.1rem 0.6rem; font-size: 0.75rem; font-weight: 600; }
.card-back-title { font-size: 1.05rem; }
.card-rating { display: flex; align-items: center; gap: 0.5rem; font-size: 0.85rem; }
.rating-bar { flex: 1; height: 6px; border-radius: 3px; background: var(--border); overflow: hidden; }
.rating-fill { height: 100%; }
.card-description { font-size: 0.85rem; color: var(--text-secondary); flex: 1; overflow: hidden; }
.card-tags, .tool-tags { display: flex; flex-wrap: wrap; gap: 0.35rem; list-style: none; }
.tag { background: var(--bg-secondary); border: 1px solid var(--border); border-radius: 4px; padding: 0 0.4rem; font-size: 0.75rem; }
.card-actions { display: flex; gap: 0.5rem; }
.card-details, .card-action, .modal-action, .modal-close-action, .tool-link {
  padding: 0.35rem 0.75rem;
  border-radius: 6px;
  border: 1px solid var(--accent);
  background: none;
  color: var(--accent);
  font-size: 0.85rem;
  cursor: pointer;
}
.card-action, .modal-action, .tool-link { background: var(--accent); color: #fff; }

/* ============ Modal ============ */
.modal { display: none; position: fixed; inset: 0; z-index: 100; }
.modal.visible { display: flex; align-items: center; justify-content: center; }
.modal-overlay { position: absolute; inset: 0; background: rgba(0,0,0,0.5); }
.modal-content {
  position: relative;
  max-width: 640px;
  width: calc(100% - 2rem);
  max-height: calc(100% - 4rem);
  overflow-y: auto;
  padding: 2rem;
  border-radius: 12px;
  background: var(--bg);
  box-shadow: var(--shadow-lg);
}
.modal-close { position: absolute; top: 0.75rem; right: 1rem; background: none; border: none; font-size: 1.5rem; color: var(--text-muted); cursor: pointer; }
.modal-header { margin-bottom: 1rem; }
.modal-title { margin-bottom: 0.5rem; }
.modal-rating { margin-bottom: 1rem; }
.stars { color: #f59e0b; letter-spacing: 2px; }
.modal-tags ul { display: flex; flex-wrap: wrap; gap: 0.35rem; list-style: none; margin-top: 0.5rem; }
.modal-actions { display: flex; gap: 0.75rem; margin-top: 1.5rem; }

/* ============ Pages ============ */
.page-content h1, .page-content h2, .page-content h3 { margin: 1.5rem 0 0.75rem; }
.page-content p, .page-content ul, .page-content ol { margin-bottom: 1rem; }
.page-content ul, .page-content ol { padding-left: 1.5rem; }
.page-content pre { padding: 1rem; border-radius: 6px; overflow-x: auto; margin-bottom: 1rem; }
.tool-detail { display: flex; flex-direction: column; gap: 1rem; }
.tool-details { border-top: 1px solid var(--border); padding-top: 1rem; }
.tool-added { color: var(--text-muted); font-size: 0.85rem; }

@media (max-width: 640px) {
  .site-header { flex-direction: column; align-items: flex-start; padding: 1rem; }
  .content { padding: 1rem; }
}
`

// jsContent progressively enhances the pre-rendered pages: flipping,
// the detail modal, client-side filtering and the language preference.
const jsContent = `(function() {
  "use strict";

  var html = document.documentElement;
  var body = document.body;
  var base = body.getAttribute("data-base") || "";
  var langBase = body.getAttribute("data-lang-base") || base;

  // ===== Theme toggle =====
  function setTheme(theme) {
    html.setAttribute("data-theme", theme);
    try { localStorage.setItem("aidir-theme", theme); } catch(e) {}
  }
  try {
    var storedTheme = localStorage.getItem("aidir-theme");
    if (storedTheme) { html.setAttribute("data-theme", storedTheme); }
  } catch(e) {}
  var themeToggle = document.getElementById("theme-toggle");
  if (themeToggle) {
    themeToggle.addEventListener("click", function() {
      setTheme(html.getAttribute("data-theme") === "dark" ? "light" : "dark");
    });
  }

  // ===== Language preference =====
  var toggle = document.querySelector(".lang-toggle");
  if (toggle) {
    toggle.addEventListener("click", function() {
      try { localStorage.setItem("aidir-lang", toggle.getAttribute("data-lang")); } catch(e) {}
    });
  }

  // ===== Flip cards =====
  var grid = document.getElementById("tools-grid");
  function closeAll(except) {
    grid.querySelectorAll(".tool-card.flipped").forEach(function(card) {
      if (card !== except) {
        card.classList.remove("flipped");
        card.setAttribute("aria-expanded", "false");
      }
    });
  }
  if (grid) {
    grid.addEventListener("click", function(e) {
      var card = e.target.closest(".tool-card[data-prepared]");
      if (!card) return;
      if (e.target.closest("a[href]")) return;
      var details = e.target.closest(".card-details");
      if (details) {
        e.stopPropagation();
        openModal(card.getAttribute("data-id"));
        return;
      }
      if (e.target.closest(".card-close")) {
        e.stopPropagation();
        card.classList.remove("flipped");
        card.setAttribute("aria-expanded", "false");
        return;
      }
      if (card.classList.contains("flipped")) return;
      closeAll(card);
      card.classList.add("flipped");
      card.setAttribute("aria-expanded", "true");
    });
  }

  // ===== Detail modal =====
  var modal = document.getElementById("tool-modal");
  function openModal(id) {
    if (!modal || !id) return;
    fetch(langBase + "tools/" + encodeURIComponent(id) + ".html")
      .then(function(r) { return r.ok ? r.text() : Promise.reject(r.status); })
      .then(function(text) {
        var doc = new DOMParser().parseFromString(text, "text/html");
        var source = doc.querySelector("template.modal-source");
        if (!source) return;
        modal.querySelector(".modal-body").replaceChildren(document.importNode(source.content, true));
        modal.classList.add("visible");
        modal.setAttribute("aria-hidden", "false");
        body.classList.add("no-scroll");
      })
      .catch(function(err) { console.warn("aidir: cannot open tool", id, err); });
  }
  function closeModal() {
    if (!modal || !modal.classList.contains("visible")) return;
    modal.classList.remove("visible");
    modal.setAttribute("aria-hidden", "true");
    body.classList.remove("no-scroll");
  }
  if (modal) {
    modal.addEventListener("click", function(e) {
      if (e.target.closest(".modal-close") || e.target.classList.contains("modal-overlay")) {
        closeModal();
      }
    });
  }
  document.addEventListener("keydown", function(e) {
    if (e.key !== "Escape") return;
    if (grid) closeAll(null);
    closeModal();
  });

  // ===== Client-side filtering =====
  var form = document.querySelector("form.filters");
  if (form && grid && form.getAttribute("action") === "") {
    form.addEventListener("submit", function(e) {
      e.preventDefault();
      var q = form.q.value.trim().toLowerCase();
      var category = form.category.value;
      var freeOnly = form.free.checked;
      var shown = 0;
      grid.querySelectorAll(".tool-card").forEach(function(card) {
        var text = card.textContent.toLowerCase();
        var match = (!q || text.indexOf(q) !== -1) &&
          (!category || card.getAttribute("data-category") === category) &&
          (!freeOnly || card.getAttribute("data-free") === "true");
        card.hidden = !match;
        if (match) shown++;
      });
      var count = document.querySelector(".grid-count .count");
      if (count) count.textContent = shown;
      var empty = document.querySelector(".grid-empty");
      if (empty) empty.hidden = shown > 0;
    });
  }
})();
`

// Stylesheet returns the site stylesheet.
func Stylesheet() string { return cssContent }

// Script returns the client script.
func Script() string { return jsContent }
