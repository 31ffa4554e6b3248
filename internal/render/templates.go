// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

// baseTemplate is the shared document shell. Page templates define the
// "content" block.
const baseTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{if .Title}}{{.Title}} — {{end}}{{.SiteName}}</title>
<style>
body{max-width:48rem;margin:0 auto;padding:1rem;font-family:Georgia,serif;line-height:1.6;color:#222}
header{border-bottom:1px solid #ddd;margin-bottom:2rem;padding-bottom:.5rem}
header a{color:#222;text-decoration:none;font-weight:bold}
article h1{margin-bottom:.25rem}
.meta{color:#777;font-size:.875rem}
.notice{background:#fffbe6;border:1px solid #e6d890;padding:.5rem 1rem;border-radius:4px;margin-bottom:1.5rem}
pre{background:#272822;color:#f8f8f2;padding:1rem;overflow-x:auto;border-radius:4px}
table{border-collapse:collapse}td,th{border:1px solid #ddd;padding:.25rem .75rem}
</style>
</head>
<body>
<header><a href="{{if .Data.homeURL}}{{.Data.homeURL}}{{else}}/{{end}}">{{.SiteName}}</a></header>
{{template "content" .}}
</body>
</html>`

// pageTemplates maps template names to their compiled-in sources.
var pageTemplates = map[string]string{
	"home": `{{define "content"}}
<main>
{{range .Data.posts}}
<article>
<h2><a href="/{{.Slug}}">{{.Title}}</a></h2>
{{if .PublishedAt}}<p class="meta">{{date .PublishedAt}}</p>{{end}}
{{if .Excerpt}}<p>{{deref .Excerpt}}</p>{{end}}
</article>
{{else}}
<p>Nothing published yet.</p>
{{end}}
</main>
{{end}}`,

	"post": `{{define "content"}}
<article>
<h1>{{.Data.post.Title}}</h1>
{{if .Data.post.PublishedAt}}<p class="meta">{{date .Data.post.PublishedAt}}</p>{{end}}
{{safe .Data.body}}
</article>
{{end}}`,

	"share_category": `{{define "content"}}
<main>
<p class="notice">You are viewing content shared with you{{if .Data.categoryName}} from <strong>{{.Data.categoryName}}</strong>{{end}}.</p>
{{range .Data.posts}}
<article>
<h2><a href="{{$.Data.baseURL}}/{{.Slug}}">{{.Title}}</a></h2>
{{if .PublishedAt}}<p class="meta">{{date .PublishedAt}}</p>{{end}}
{{if .Excerpt}}<p>{{deref .Excerpt}}</p>{{end}}
</article>
{{else}}
<p>No posts here yet.</p>
{{end}}
{{if .Data.collections}}
<h2>Collections</h2>
<ul>
{{range .Data.collections}}
<li><a href="{{$.Data.baseURL}}/db/{{.Slug}}">{{.Name}}</a></li>
{{end}}
</ul>
{{end}}
</main>
{{end}}`,

	"share_post": `{{define "content"}}
<p class="notice">You are viewing a shared post.</p>
<article>
<h1>{{.Data.post.Title}}</h1>
{{if .Data.post.PublishedAt}}<p class="meta">{{date .Data.post.PublishedAt}}</p>{{end}}
{{safe .Data.body}}
</article>
{{end}}`,

	"share_collection": `{{define "content"}}
<main>
<p class="notice">You are viewing a shared collection.</p>
<h1>{{.Data.collection.Name}}</h1>
{{range .Data.items}}
<article>
<h2><a href="{{$.Data.baseURL}}/{{.ID}}">{{.Title}}</a></h2>
</article>
{{else}}
<p>This collection is empty.</p>
{{end}}
</main>
{{end}}`,

	"share_item": `{{define "content"}}
<article>
<p class="notice">You are viewing a shared item from <strong>{{.Data.collection.Name}}</strong>.</p>
<h1>{{.Data.item.Title}}</h1>
{{safe .Data.body}}
</article>
{{end}}`,

	"link_expired": `{{define "content"}}
<main>
<h1>This link has expired</h1>
<p>The share link you followed is no longer active. Ask the person who
shared it with you for a new link.</p>
</main>
{{end}}`,

	"not_found": `{{define "content"}}
<main>
<h1>Page not found</h1>
<p>The page you are looking for does not exist.</p>
</main>
{{end}}`,

	"login": `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Sign in — {{.SiteName}}</title>
</head>
<body>
<h1>Sign in</h1>
{{if .Data.error}}<p role="alert">{{.Data.error}}</p>{{end}}
<form method="post" action="/admin/login">
<input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
<label>Email <input type="email" name="email" required autofocus></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">Sign in</button>
</form>
</body>
</html>`,

	"2fa_verify": `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Two-factor verification — {{.SiteName}}</title>
</head>
<body>
<h1>Enter your authentication code</h1>
{{if .Data.error}}<p role="alert">{{.Data.error}}</p>{{end}}
<form method="post" action="/admin/2fa/verify">
<input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
<label>Code <input type="text" name="code" inputmode="numeric" pattern="[0-9]*" maxlength="6" required autofocus></label>
<button type="submit">Verify</button>
</form>
</body>
</html>`,

	"2fa_setup": `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Set up two-factor authentication — {{.SiteName}}</title>
</head>
<body>
<h1>Set up two-factor authentication</h1>
<p>Scan this QR code with your authenticator app, then enter the
six-digit code it shows.</p>
<img src="/admin/2fa/qr" alt="TOTP enrollment QR code" width="256" height="256">
{{if .Data.error}}<p role="alert">{{.Data.error}}</p>{{end}}
<form method="post" action="/admin/2fa/verify">
<input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
<label>Code <input type="text" name="code" inputmode="numeric" pattern="[0-9]*" maxlength="6" required autofocus></label>
<button type="submit">Activate</button>
</form>
</body>
</html>`,
}
