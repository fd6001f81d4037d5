// Package webserver exposes the HTTP surface: the streaming completion
// endpoint, the local-only compatibility endpoints, and an embedded HTML
// viewer over the provider caches.
package webserver

import (
	"context"
	"embed"
	"html/template"
	"net"
	"net/http"

	"github.com/Masterminds/sprig/v3"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/malonaz/chatd/api"
	"github.com/malonaz/chatd/chats"
	"github.com/malonaz/chatd/configuration"
	"github.com/malonaz/chatd/internal/debug"
	"github.com/malonaz/chatd/llm"
	"github.com/malonaz/chatd/messages"
	"github.com/malonaz/chatd/state"
	"github.com/malonaz/chatd/store"
	"github.com/malonaz/chatd/user"
)

//go:embed templates
var templatesFS embed.FS

// Server wires the store, repositories and providers behind the HTTP mux.
type Server struct {
	config          *configuration.Config
	objects         store.ObjectStore
	chatRepo        *chats.Repository
	messageRepo     *messages.Repository
	userStore       *user.Store
	session         *state.Session
	chatProvider    *state.ChatProvider
	messageProvider *state.MessageProvider
	notifier        *state.ToastNotifier

	newLLMClient func(model string) (llm.Client, error)
	tmpl         *template.Template
	httpSrv      *http.Server
	ln           net.Listener
}

// NewServeCmd returns the serve command.
func NewServeCmd(config *configuration.Config) *cobra.Command {
	var opts struct {
		Address string
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local chat application",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Address != "" {
				config.Address = opts.Address
			}
			objects, err := store.New(config.DatabasePath)
			if err != nil {
				return errors.Wrap(err, "opening object store")
			}
			defer objects.Close()

			server, err := New(config, objects)
			if err != nil {
				return err
			}
			if err := server.Listen(); err != nil {
				return err
			}
			return server.Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&opts.Address, "address", "a", "", "Address to serve on")
	return cmd
}

// New builds a fully wired server. The chat repository's compatibility
// client points back at this server's own address: mutations loop through
// the same endpoints an external client would use.
func New(config *configuration.Config, objects store.ObjectStore) (*Server, error) {
	tmpl, err := template.New("").Funcs(sprig.HtmlFuncMap()).ParseFS(templatesFS,
		"templates/*.tmpl",
		"templates/pages/*.tmpl",
	)
	if err != nil {
		return nil, errors.Wrap(err, "parsing templates")
	}

	notifier := state.NewToastNotifier()
	session := state.NewSession()
	compat := api.NewClient("http://"+config.Address, nil)
	chatRepo := chats.NewRepository(objects, compat)
	messageRepo := messages.NewRepository(objects)

	s := &Server{
		config:          config,
		objects:         objects,
		chatRepo:        chatRepo,
		messageRepo:     messageRepo,
		userStore:       user.NewStore(objects),
		session:         session,
		chatProvider:    state.NewChatProvider(chatRepo, notifier),
		messageProvider: state.NewMessageProvider(messageRepo, notifier, session),
		notifier:        notifier,
		newLLMClient: func(model string) (llm.Client, error) {
			return llm.NewClient(config, model)
		},
		tmpl: tmpl,
	}

	mux := http.NewServeMux()

	// Streaming completion endpoint.
	mux.HandleFunc("POST /api/chat", s.handleChat)

	// Chat-lifecycle compatibility endpoints.
	mux.HandleFunc("POST /api/create-chat", s.handleCreateChat)
	mux.HandleFunc("POST /api/update-chat-model", s.handleUpdateChatModel)
	mux.HandleFunc("POST /api/toggle-chat-pin", s.handleToggleChatPin)

	// Preferences, keys and account stubs.
	mux.HandleFunc("GET /api/user-preferences", s.handleGetPreferences)
	mux.HandleFunc("PUT /api/user-preferences", s.handlePutPreferences)
	mux.HandleFunc("GET /api/user-keys", s.handleGetUserKeys)
	mux.HandleFunc("POST /api/user-keys", s.handleSetUserKey)
	mux.HandleFunc("POST /api/user-key-status", s.handleUserKeyStatus)
	mux.HandleFunc("GET /api/providers", s.handleProviders)
	mux.HandleFunc("GET /api/rate-limits", s.handleRateLimits)
	mux.HandleFunc("POST /api/create-guest", s.handleCreateGuest)
	mux.HandleFunc("GET /api/projects", s.handleListProjects)
	mux.HandleFunc("POST /api/projects", s.handleCreateProject)

	// Embedded viewer.
	mux.HandleFunc("GET /{$}", s.handleInbox)
	mux.HandleFunc("GET /c/{id}", s.handleChatPage)
	mux.HandleFunc("POST /chats", s.handleNewChat)
	mux.HandleFunc("POST /c/{id}/rename", s.handleRenameChat)
	mux.HandleFunc("POST /c/{id}/pin", s.handlePinChat)
	mux.HandleFunc("POST /c/{id}/delete", s.handleDeleteChat)

	s.httpSrv = &http.Server{Handler: mux}
	return s, nil
}

// Listen binds the configured address.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return errors.Wrap(err, "binding address")
	}
	s.ln = ln
	return nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.config.Address
	}
	return s.ln.Addr().String()
}

// Serve handles requests until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.chatProvider.Refresh(); err != nil {
		debug.GetLogger().Warn("loading chat cache", "error", err)
	}

	go func() {
		<-ctx.Done()
		s.httpSrv.Shutdown(context.Background())
	}()

	color.New(color.FgMagenta, color.Bold).Printf("chatd running at http://%s\n", s.Addr())
	if err := s.httpSrv.Serve(s.ln); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "serving")
	}
	return nil
}
