package router

import (
	"html/template"
	"strings"

	"github.com/gin-contrib/multitemplate"
	"github.com/user/dreamyvoice/internal/admin"
)

const layoutTemplate = `{{define "layout"}}<!doctype html>
<html lang="ru">
  <head>
    <meta charset="utf-8" />
    <title>{{.Title}}</title>
  </head>
  <body>
    {{template "content" .}}
  </body>
</html>{{end}}`

const loginTemplate = `{{template "layout" .}}{{define "content"}}<main>
      <h1>Вход для админов</h1>
      {{range .Flashes}}<p class="flash">{{.}}</p>{{end}}
      <form method="post" action="{{.Action}}">
        <label>
          Никнейм
          <input type="text" name="username" required minlength="3" maxlength="32" />
        </label>
        <label>
          Пароль
          <input type="password" name="password" required minlength="6" maxlength="128" />
        </label>
        <button type="submit">Войти</button>
      </form>
    </main>{{end}}`

const dashboardTemplate = `{{template "layout" .}}{{define "content"}}<header>
      <h1>DreamyVoice Admin</h1>
      {{with .User}}<span class="user">{{.Username}}</span>{{end}}
      <form method="post" action="{{.LogoutURL}}"><button type="submit">Выйти</button></form>
    </header>
    <section class="stats">
      <p>Пользователи: <b data-stat="users">{{.Stats.Users}}</b></p>
      <p>Тайтлы: <b data-stat="titles">{{.Stats.Titles}}</b></p>
      <p>На модерации: <b data-stat="pending">{{.Stats.PendingComments}}</b></p>
    </section>
    {{range .Groups}}<nav class="group">
      <h2>{{.Name}}</h2>
      <ul>{{range .Resources}}
        <li data-resource="{{.Name}}"><a href="/admin/resources/{{.Name}}">{{.Label}}</a> <small>{{ops .Operations}}</small></li>{{end}}
      </ul>
    </nav>{{end}}{{end}}`

// LoadTemplates builds the HTML renderer for the admin pages. Each page
// renders the shared layout and fills its "content" block.
func LoadTemplates() multitemplate.Renderer {
	r := multitemplate.NewRenderer()
	funcMap := template.FuncMap{
		"ops": func(ops []admin.Operation) string {
			names := make([]string, 0, len(ops))
			for _, op := range ops {
				names = append(names, string(op))
			}
			return strings.Join(names, ", ")
		},
	}

	r.AddFromStringsFuncs("admin/login.html", funcMap, layoutTemplate, loginTemplate)
	r.AddFromStringsFuncs("admin/dashboard.html", funcMap, layoutTemplate, dashboardTemplate)
	return r
}
