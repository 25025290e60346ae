package handlers

import "html/template"

// The presentation layer is deliberately thin: a handful of inline pages
// sharing a header and the entries sidebar.

const pageTemplateText = `
{{define "styles"}}
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<style>
*{margin:0;padding:0;box-sizing:border-box;font-family:sans-serif;}
body{background:linear-gradient(135deg,#667eea,#764ba2);min-height:100vh;}
.header{background:rgba(0,0,0,0.7);color:white;padding:15px 25px;display:flex;justify-content:space-between;align-items:center;}
.header a{color:white;margin-right:15px;}
.container{display:flex;min-height:calc(100vh - 60px);}
.sidebar{width:30%;background:rgba(255,255,255,0.15);padding:20px;color:white;overflow-y:auto;}
.editor{flex:1;background:white;padding:25px;overflow-y:auto;}
.card{background:rgba(255,255,255,0.25);padding:12px;border-radius:10px;margin-bottom:10px;display:flex;justify-content:space-between;align-items:center;}
.card b{color:white;}
.preview{font-size:12px;opacity:0.8;margin-top:3px;}
input,textarea{width:100%;padding:10px;margin-bottom:12px;border-radius:8px;border:1px solid #ddd;}
textarea{min-height:200px;}
button{padding:8px 15px;border:none;border-radius:6px;cursor:pointer;margin:5px;}
.primary{background:#667eea;color:white;}
.secondary{background:#48bb78;color:white;}
.danger{background:#f56565;color:white;}
.edit{background:#f6ad55;color:white;}
img{max-width:100%;margin-top:10px;border-radius:8px;}
.message{padding:10px;border-radius:5px;margin-bottom:15px;text-align:center;}
.success{background:#48bb78;color:white;}
.error{background:#f56565;color:white;}
.login-card{max-width:400px;margin:10vh auto;background:white;padding:40px;border-radius:20px;}
.login-card h2{text-align:center;margin-bottom:20px;}
.empty{text-align:center;color:#666;margin-top:50px;}
</style>
{{end}}

{{define "header"}}
<div class="header">
	<h3>&#128212; {{.Username}}'s Diary</h3>
	<div>
		<a href="/">Home</a>
		<a href="/logout"><button class="danger">Logout</button></a>
	</div>
</div>
{{end}}

{{define "sidebar"}}
<div class="sidebar">
	<h3>&#128221; Your Entries ({{len .Entries}})</h3>
	<a href="/new"><button class="primary" style="width:100%;margin-bottom:15px;">+ New Entry</button></a>
	{{range .Entries}}
	<div class="card">
		<div>
			<b>{{.Date}}</b>
			{{if .Preview}}<div class="preview">{{.Preview}}...</div>{{end}}
		</div>
		<span>
			<a href="/view/{{.ID}}"><button class="secondary">View</button></a>
			<a href="/edit/{{.ID}}"><button class="edit">Edit</button></a>
			<a href="/delete/{{.ID}}"><button class="danger">Delete</button></a>
		</span>
	</div>
	{{else}}
	<p style="text-align:center;opacity:0.7;">No entries yet. Create your first diary entry!</p>
	{{end}}
</div>
{{end}}

{{define "message"}}
{{if .Message}}<div class="message {{.MessageType}}">{{.Message}}</div>{{end}}
{{end}}

{{define "login"}}
<!DOCTYPE html>
<html>
<head><title>Login - Personal Diary</title>{{template "styles" .}}</head>
<body>
<div class="login-card">
	<h2>&#128212; Personal Diary</h2>
	{{template "message" .}}
	{{if eq .ActiveTab "signup"}}
	<form method="post" action="/signup">
		<label>Username</label>
		<input type="text" name="username" required autocomplete="off">
		<label>Password</label>
		<input type="password" name="password" required>
		<button type="submit" class="secondary" style="width:100%;">Create Account</button>
	</form>
	<p style="text-align:center;margin-top:20px;">Already have an account? <a href="/">Login here</a></p>
	{{else}}
	<form method="post" action="/login">
		<label>Username</label>
		<input type="text" name="username" required autocomplete="off">
		<label>Password</label>
		<input type="password" name="password" required>
		<button type="submit" class="primary" style="width:100%;">Login</button>
	</form>
	<form method="post" action="/signup" style="margin-top:20px;border-top:2px solid #eee;padding-top:20px;">
		<label>New here? Pick a username and password:</label>
		<input type="text" name="username" required autocomplete="off" placeholder="Username">
		<input type="password" name="password" required placeholder="Password">
		<button type="submit" class="secondary" style="width:100%;">Sign Up</button>
	</form>
	{{end}}
</div>
</body>
</html>
{{end}}

{{define "home"}}
<!DOCTYPE html>
<html>
<head><title>Personal Diary</title>{{template "styles" .}}</head>
<body>
{{template "header" .}}
<div class="container">
	{{template "sidebar" .}}
	<div class="editor">
		{{template "message" .}}
		<h3 class="empty">&#128072; Select an entry from the sidebar or create a new one</h3>
	</div>
</div>
</body>
</html>
{{end}}

{{define "entry_new"}}
<!DOCTYPE html>
<html>
<head><title>New Entry - Personal Diary</title>{{template "styles" .}}</head>
<body>
{{template "header" .}}
<div class="container">
	{{template "sidebar" .}}
	<div class="editor">
		{{template "message" .}}
		<h3 style="margin-bottom:20px;">&#128221; New Diary Entry</h3>
		<form method="post" action="/save" enctype="multipart/form-data" style="max-width:600px;">
			<label>Date:</label>
			<input type="date" name="date" value="{{.Today}}" required>
			<label>Your thoughts:</label>
			<textarea name="content" placeholder="Write your diary entry here..." required></textarea>
			<label>Photos (optional):</label>
			<input type="file" name="photos" multiple accept="image/*">
			<button type="submit" class="primary">Save Entry</button>
			<a href="/entries"><button type="button" class="danger">Cancel</button></a>
		</form>
	</div>
</div>
</body>
</html>
{{end}}

{{define "entry_saved"}}
<!DOCTYPE html>
<html>
<head><title>Personal Diary</title>{{template "styles" .}}</head>
<body>
{{template "header" .}}
<div class="container">
	{{template "sidebar" .}}
	<div class="editor">
		<div style="text-align:center;margin-top:50px;">
			<h3 style="color:#48bb78;">&#9989; Entry saved! {{.SavedCount}} photos uploaded</h3>
			<div style="margin-top:20px;">
				<a href="/view/{{.EntryID}}"><button class="primary">View Entry</button></a>
				<a href="/new"><button class="secondary">Write Another</button></a>
			</div>
		</div>
	</div>
</div>
</body>
</html>
{{end}}

{{define "entry_view"}}
<!DOCTYPE html>
<html>
<head><title>{{.Entry.Date}} - Personal Diary</title>{{template "styles" .}}</head>
<body>
{{template "header" .}}
<div class="container">
	{{template "sidebar" .}}
	<div class="editor">
		<div style="max-width:800px;">
			<div style="display:flex;justify-content:space-between;align-items:center;margin-bottom:20px;">
				<h2>&#128197; {{.Entry.Date}}</h2>
				<span>
					<a href="/edit/{{.Entry.ID}}"><button class="edit">Edit</button></a>
					<a href="/new"><button class="primary">+ New Entry</button></a>
				</span>
			</div>
			<div style="background:#f9f9f9;padding:25px;border-radius:10px;margin-bottom:20px;">
				<p style="white-space:pre-wrap;line-height:1.6;">{{.Entry.Content}}</p>
			</div>
			{{if .Entry.Photos}}
			<h3 style="margin:20px 0 10px;">&#128248; Photos</h3>
			<div style="display:grid;grid-template-columns:repeat(auto-fill,minmax(150px,1fr));gap:10px;">
				{{range .Entry.Photos}}
				<div style="border:1px solid #ddd;border-radius:8px;overflow:hidden;">
					<img src="/uploads/{{.Filename}}" style="width:100%;object-fit:cover;">
				</div>
				{{end}}
			</div>
			{{end}}
		</div>
	</div>
</div>
</body>
</html>
{{end}}

{{define "entry_edit"}}
<!DOCTYPE html>
<html>
<head><title>Edit Entry - Personal Diary</title>{{template "styles" .}}</head>
<body>
{{template "header" .}}
<div class="container">
	{{template "sidebar" .}}
	<div class="editor">
		{{template "message" .}}
		<h3 style="margin-bottom:20px;">&#9999;&#65039; Edit Entry</h3>
		<form method="post" action="/update/{{.Entry.ID}}" enctype="multipart/form-data" style="max-width:600px;">
			<label>Date:</label>
			<input type="date" name="date" value="{{.Entry.Date}}" required>
			<label>Your thoughts:</label>
			<textarea name="content" required>{{.Entry.Content}}</textarea>
			<label>Add photos:</label>
			<input type="file" name="photos" multiple accept="image/*">
			<button type="submit" class="primary">Save Changes</button>
			<a href="/view/{{.Entry.ID}}"><button type="button" class="danger">Cancel</button></a>
		</form>
	</div>
</div>
</body>
</html>
{{end}}

{{define "admin"}}
<!DOCTYPE html>
<html>
<head><title>Admin - Personal Diary</title>{{template "styles" .}}</head>
<body>
{{template "header" .}}
<div class="container">
	<div class="sidebar" style="width:100%;">
		<h3>&#128101; All Users ({{len .Users}})</h3>
		{{range .Users}}
		<div class="card">
			<div>
				<b>{{.Username}}</b>
				<div class="preview">{{.EntryCount}} entries, {{.PhotoCount}} photos &middot; joined {{.JoinedAt.Format "2006-01-02"}}</div>
			</div>
			<a href="/admin_login/{{.ID}}"><button class="primary">Login as {{.Username}}</button></a>
		</div>
		{{else}}
		<p style="text-align:center;opacity:0.7;">No users yet.</p>
		{{end}}
	</div>
</div>
</body>
</html>
{{end}}
`

// pageTemplates parses the inline pages once at router construction.
func pageTemplates() *template.Template {
	return template.Must(template.New("pages").Parse(pageTemplateText))
}
