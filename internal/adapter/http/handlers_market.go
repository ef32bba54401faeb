package adapthttp

import (
	"errors"
	"net/http"
	"strconv"

	"market/internal/domain"
)

type dashboardViewModel struct {
	Notice   string
	Username string
	Listings []domain.Listing
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)

	listings, err := s.listings.ListAll(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.render(w, "dashboard.html", dashboardViewModel{
		Notice:   s.popFlash(w, r),
		Username: acct.Username,
		Listings: listings,
	})
}

type addProductViewModel struct {
	Notice string
}

func (s *Server) handleAddProductPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "add_product.html", addProductViewModel{Notice: s.popFlash(w, r)})
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)
	if err := r.ParseForm(); err != nil {
		s.flashRedirect(w, r, "/add_product", "Invalid form submission.")
		return
	}

	// Fields are stored verbatim; price in particular is opaque text.
	_, err := s.listings.Create(r.Context(), acct.ID,
		r.FormValue("name"), r.FormValue("price"), r.FormValue("description"))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

type productViewModel struct {
	Listing *domain.Listing
	// Owner exposes only the listing owner's username; balances never
	// leave the account service here.
	Owner string
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	listing, owner, err := s.listings.Get(r.Context(), id)
	if errors.Is(err, domain.ErrListingNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.render(w, "product.html", productViewModel{Listing: listing, Owner: owner.Username})
}

type transferViewModel struct {
	Notice   string
	Username string
	Balance  int64
}

func (s *Server) handleTransferPage(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)
	s.render(w, "transfer.html", transferViewModel{
		Notice:   s.popFlash(w, r),
		Username: acct.Username,
		Balance:  acct.Balance,
	})
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)
	if err := r.ParseForm(); err != nil {
		s.flashRedirect(w, r, "/transfer", "Invalid form submission.")
		return
	}

	err := s.accounts.Transfer(r.Context(), acct.ID, r.FormValue("username"), r.FormValue("amount"))
	switch {
	case err == nil:
		s.flashRedirect(w, r, "/transfer", "Transfer complete.")
	case errors.Is(err, domain.ErrInvalidAmount):
		s.flashRedirect(w, r, "/transfer", "Amount must be a positive whole number.")
	case errors.Is(err, domain.ErrRecipientNotFound):
		s.flashRedirect(w, r, "/transfer", "No such recipient.")
	case errors.Is(err, domain.ErrSelfTransfer):
		s.flashRedirect(w, r, "/transfer", "You cannot transfer to yourself.")
	case errors.Is(err, domain.ErrInsufficientBalance):
		s.flashRedirect(w, r, "/transfer", "Insufficient balance.")
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type reportViewModel struct {
	Notice string
}

func (s *Server) handleReportPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "report.html", reportViewModel{Notice: s.popFlash(w, r)})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.flashRedirect(w, r, "/report", "Invalid form submission.")
		return
	}

	err := s.reports.File(r.Context(),
		r.FormValue("username"), r.FormValue("product_id"), r.FormValue("reason"))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}
