package webserver

import (
	"net/http"

	"github.com/malonaz/chatd/chats"
	"github.com/malonaz/chatd/messages"
)

type pageData struct {
	Title         string
	Chats         []*chats.Chat
	PinnedChats   []*chats.Chat
	Chat          *chats.Chat
	Messages      []*messages.Message
	Models        []string
	Notifications []string
}

// handleInbox renders the chat list with the pinned section on top.
func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	s.session.SetPath(r.URL.Path)
	if err := s.chatProvider.Refresh(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := pageData{
		Title:         "Chats",
		Chats:         s.chatProvider.Chats(),
		PinnedChats:   s.chatProvider.PinnedChats(),
		Notifications: s.notifier.Recent(),
	}
	if err := s.tmpl.ExecuteTemplate(w, "inbox", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleChatPage renders a single transcript. Navigating here makes the
// chat the session's active chat, which resynchronizes the message cache.
func (s *Server) handleChatPage(w http.ResponseWriter, r *http.Request) {
	s.session.SetPath(r.URL.Path)

	chat := s.chatProvider.GetByID(r.PathValue("id"))
	if chat == nil {
		http.NotFound(w, r)
		return
	}

	var modelNames []string
	for _, provider := range s.config.Providers {
		modelNames = append(modelNames, provider.Models...)
	}

	data := pageData{
		Title:         chat.Title,
		Chat:          chat,
		Messages:      s.messageProvider.Messages(),
		Models:        modelNames,
		Notifications: s.notifier.Recent(),
	}
	if err := s.tmpl.ExecuteTemplate(w, "chat", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleNewChat creates a chat through the provider and navigates to it.
func (s *Server) handleNewChat(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	profile, err := s.userStore.GetOrCreateUser()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	chat, err := s.chatProvider.Create(r.Context(), &chats.CreateChatRequest{
		UserID: profile.ID,
		Title:  r.FormValue("title"),
		Model:  s.config.DefaultModel,
	})
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/c/"+chat.ID, http.StatusSeeOther)
}

func (s *Server) handleRenameChat(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	title := r.FormValue("title")
	if title == "" {
		http.Error(w, "Title cannot be empty", http.StatusBadRequest)
		return
	}

	chatID := r.PathValue("id")
	s.chatProvider.Rename(chatID, title)
	http.Redirect(w, r, "/c/"+chatID, http.StatusSeeOther)
}

func (s *Server) handlePinChat(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	chatID := r.PathValue("id")
	pinned := r.FormValue("pinned") == "true"
	s.chatProvider.SetPinned(r.Context(), chatID, pinned)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	s.chatProvider.Delete(r.PathValue("id"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
