package http

import (
	"net/http"
	"strings"
)

// RouterConfig collects the handlers mounted by NewRouter. Nil handlers leave
// their routes unmounted.
type RouterConfig struct {
	Appointments *AppointmentHandler
	Todos        *TodoHandler
	Directory    *DirectoryHandler
	Share        *ShareHandler
}

// NewRouter mounts the JSON API.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Appointments != nil {
		mux.HandleFunc("/appointments", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Appointments.List(w, r)
			case http.MethodPost, http.MethodPut:
				cfg.Appointments.Save(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodPut)
			}
		})
		mux.HandleFunc("/appointments/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/appointments/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Appointments.Delete(w, r, id)
		})
		mux.HandleFunc("/export", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Appointments.ExportCSV(w, r)
		})
	}

	if cfg.Todos != nil {
		mux.HandleFunc("/todos", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Todos.List(w, r)
			case http.MethodPost:
				cfg.Todos.Add(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/todos/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/todos/")
			if rest == "" {
				http.NotFound(w, r)
				return
			}
			switch {
			case strings.HasSuffix(rest, "/toggle"):
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Todos.Toggle(w, r, strings.TrimSuffix(rest, "/toggle"))
			case strings.HasSuffix(rest, "/schedule"):
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Todos.Schedule(w, r, strings.TrimSuffix(rest, "/schedule"))
			default:
				if r.Method != http.MethodDelete {
					methodNotAllowed(w, http.MethodDelete)
					return
				}
				cfg.Todos.Delete(w, r, rest)
			}
		})
	}

	if cfg.Directory != nil {
		mux.HandleFunc("/contacts", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Directory.ListContacts(w, r)
			case http.MethodPost, http.MethodPut:
				cfg.Directory.SaveContact(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodPut)
			}
		})
		mux.HandleFunc("/contacts/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/contacts/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Directory.DeleteContact(w, r, id)
		})
		mux.HandleFunc("/groups", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Directory.ListGroups(w, r)
			case http.MethodPost:
				cfg.Directory.CreateGroup(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/labels", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Directory.GetLabels(w, r)
			case http.MethodPut:
				cfg.Directory.UpdateLabels(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut)
			}
		})
		mux.HandleFunc("/import", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Directory.Import(w, r)
		})
	}

	if cfg.Share != nil {
		mux.HandleFunc("/share", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Share.Stage(w, r)
		})
		mux.HandleFunc("/share/pending", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Share.Pending(w, r)
		})
		mux.HandleFunc("/share/accept", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Share.Accept(w, r)
		})
		mux.HandleFunc("/share/discard", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Share.Discard(w, r)
		})
	}

	return mux
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
