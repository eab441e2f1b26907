package repository

import (
	"context"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pustakalaya/intake-service/internal/errs"
	"github.com/pustakalaya/intake-service/internal/model"
)

type Repository interface {
	CreateDonation(ctx context.Context, req model.AddBooksRequest) (model.AddBooksResponse, error)
	GetDonorByMobile(ctx context.Context, mobile string) (model.Donor, error)
	GetLibrarianByEmail(ctx context.Context, email string) (model.Librarian, error)
	TouchLastLogin(ctx context.Context, id int) error
}

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	loginsTableName = `logins`
	donorsTableName = `donors`
	booksTableName  = `books`
	filesTableName  = `files`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// CreateDonation records a donor, the donated books and an optional
// certificate reference in one transaction. Any failure rolls back the
// whole batch. Unique constraints on donors.mobile and books.isbn are the
// authoritative conflict signal; the pre-checks below only produce
// friendlier errors for the common case.
func (r *repository) CreateDonation(ctx context.Context, req model.AddBooksRequest) (model.AddBooksResponse, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.AddBooksResponse{}, errors.Wrap(err, "begin")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	ok, err := r.librarianExists(ctx, tx, req.LibrarianID)
	if err != nil {
		return model.AddBooksResponse{}, err
	}
	if !ok {
		return model.AddBooksResponse{}, errs.ErrLibrarianNotFound
	}

	donorID, err := r.resolveDonor(ctx, tx, req)
	if err != nil {
		return model.AddBooksResponse{}, err
	}

	bookIDs := make([]int, 0, len(req.Books))
	for _, book := range req.Books {
		id, err := r.insertBook(ctx, tx, book, donorID, req.LibrarianID)
		if err != nil {
			return model.AddBooksResponse{}, err
		}
		bookIDs = append(bookIDs, id)
	}

	if req.CertificatePath != "" {
		if err := r.insertCertificate(ctx, tx, req.CertificatePath, donorID, req.LibrarianID); err != nil {
			return model.AddBooksResponse{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return model.AddBooksResponse{}, errors.Wrap(err, "commit")
	}

	return model.AddBooksResponse{
		UserID:           donorID,
		BookIDs:          bookIDs,
		TotalBooks:       len(bookIDs),
		CertificateSaved: req.CertificatePath != "",
	}, nil
}

func (r *repository) librarianExists(ctx context.Context, tx pgx.Tx, id int) (bool, error) {
	q := `select exists(select 1 from logins where id = $1 and role = $2)`
	var ok bool
	if err := tx.QueryRow(ctx, q, id, model.RoleLibrarian).Scan(&ok); err != nil {
		return false, errors.Wrap(err, "librarianExists")
	}
	return ok, nil
}

func (r *repository) resolveDonor(ctx context.Context, tx pgx.Tx, req model.AddBooksRequest) (int, error) {
	if !req.IsNewUser {
		q := `select exists(select 1 from donors where id = $1)`
		var ok bool
		if err := tx.QueryRow(ctx, q, req.UserData.UID).Scan(&ok); err != nil {
			return 0, errors.Wrap(err, "donor lookup")
		}
		if !ok {
			return 0, errs.ErrDonorNotFound
		}
		return req.UserData.UID, nil
	}

	var exists bool
	if err := tx.QueryRow(ctx,
		`select exists(select 1 from donors where mobile = $1)`, req.UserData.Mobile).Scan(&exists); err != nil {
		return 0, errors.Wrap(err, "donor mobile pre-check")
	}
	if exists {
		return 0, errs.ErrDuplicateMobile
	}

	query, args, err := qb.Insert(donorsTableName).
		Columns("name", "mobile", "librarian_id").
		Values(req.UserData.Name, req.UserData.Mobile, req.LibrarianID).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var donorID int
	if err := tx.QueryRow(ctx, query, args...).Scan(&donorID); err != nil {
		if isUniqueViolation(err) {
			return 0, errs.ErrDuplicateMobile
		}
		r.log.Error("insert donor", zap.String("q", query), zap.Error(err))
		return 0, errors.Wrap(err, "insert donor")
	}
	return donorID, nil
}

func (r *repository) insertBook(ctx context.Context, tx pgx.Tx, book model.BookItem, donorID, librarianID int) (int, error) {
	var exists bool
	if err := tx.QueryRow(ctx,
		`select exists(select 1 from books where isbn = $1)`, book.ISBN).Scan(&exists); err != nil {
		return 0, errors.Wrap(err, "isbn pre-check")
	}
	if exists {
		return 0, errors.Wrapf(errs.ErrDuplicateISBN, "isbn %s", book.ISBN)
	}

	query, args, err := qb.Insert(booksTableName).
		Columns("title", "author", "genre", "isbn", "count", "donor_id", "librarian_id").
		Values(book.Title, book.Author, book.Genre, book.ISBN, book.Count, donorID, librarianID).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, errors.Wrapf(errs.ErrDuplicateISBN, "isbn %s", book.ISBN)
		}
		r.log.Error("insert book", zap.String("q", query), zap.Error(err))
		return 0, errors.Wrap(err, "insert book")
	}
	return id, nil
}

func (r *repository) insertCertificate(ctx context.Context, tx pgx.Tx, path string, donorID, librarianID int) error {
	query, args, err := qb.Insert(filesTableName).
		Columns("path", "donor_id", "librarian_id").
		Values(path, donorID, librarianID).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert certificate")
	}
	return nil
}

func (r *repository) GetDonorByMobile(ctx context.Context, mobile string) (model.Donor, error) {
	query, args, err := qb.Select("id", "name", "mobile", "created_at").
		From(donorsTableName).
		Where(sq.Eq{"mobile": mobile}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Donor{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Donor{}, err
	}
	defer rows.Close()

	donor, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Donor])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Donor{}, errs.ErrNotFound
		}
		return model.Donor{}, err
	}
	return donor, nil
}

func (r *repository) GetLibrarianByEmail(ctx context.Context, email string) (model.Librarian, error) {
	query, args, err := qb.Select("id", "name", "email", "password_hash", "mobile", "role", "updated_at").
		From(loginsTableName).
		Where(sq.Eq{"email": email}).
		Where(sq.Eq{"role": model.RoleLibrarian}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Librarian{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Librarian{}, err
	}
	defer rows.Close()

	librarian, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Librarian])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Librarian{}, errs.ErrNotFound
		}
		return model.Librarian{}, err
	}
	return librarian, nil
}

func (r *repository) TouchLastLogin(ctx context.Context, id int) error {
	q := `update logins set updated_at = now() where id = @id`
	args := pgx.NamedArgs{
		"id": id,
	}
	_, err := r.db.Exec(ctx, q, args)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
