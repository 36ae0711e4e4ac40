package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/CrestNiraj12/igreply/app"
	"github.com/CrestNiraj12/igreply/domain"
	"github.com/CrestNiraj12/igreply/internal/output"
)

// cmdEnv is what a non-interactive command gets to work with.
type cmdEnv struct {
	accounts app.AccountService
	comments app.CommentService
	out      io.Writer
}

type command struct {
	summary string
	run     func(ctx context.Context, env cmdEnv, args []string) error
}

var commandOrder = []string{"accounts", "comments", "sync", "reply", "delete-account", "delete-comment"}

var commands = map[string]command{
	"accounts":       {summary: "list linked accounts", run: runAccounts},
	"comments":       {summary: "list comments", run: runComments},
	"sync":           {summary: "pull new comments from Instagram", run: runSync},
	"reply":          {summary: "reply to a comment", run: runReply},
	"delete-account": {summary: "unlink an account", run: runDeleteAccount},
	"delete-comment": {summary: "delete a stored comment", run: runDeleteComment},
}

func runCommand(ctx context.Context, name string, args []string, accounts app.AccountService, comments app.CommentService, out io.Writer) error {
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	return cmd.run(ctx, cmdEnv{accounts: accounts, comments: comments, out: out}, args)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func formatFlag(fs *flag.FlagSet) *string {
	return fs.String("format", "", "output format: json or plain (default plain on a terminal, json otherwise)")
}

func runAccounts(ctx context.Context, env cmdEnv, args []string) error {
	fs := newFlagSet("accounts")
	format := formatFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := output.Normalize(*format)
	if err != nil {
		return err
	}

	list, err := env.accounts.ListAccounts(ctx)
	if err != nil {
		return err
	}
	return output.Accounts(env.out, list, f)
}

func runComments(ctx context.Context, env cmdEnv, args []string) error {
	fs := newFlagSet("comments")
	format := formatFlag(fs)
	account := fs.String("account", "", "account id")
	post := fs.String("post", "", "only comments on this post id")
	limit := fs.Int("limit", 100, "page size")
	offset := fs.Int("offset", 0, "page offset")
	filter := fs.String("filter", "", "case-insensitive text or username match")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := output.Normalize(*format)
	if err != nil {
		return err
	}
	if *limit <= 0 || *offset < 0 {
		return errors.New("--limit must be positive and --offset not negative")
	}

	list, err := env.comments.ListComments(ctx, app.CommentQuery{
		AccountID: *account,
		PostID:    *post,
		Limit:     *limit,
		Offset:    *offset,
	})
	if err != nil {
		return err
	}
	return output.Comments(env.out, domain.FilterComments(list, *filter), f)
}

func runSync(ctx context.Context, env cmdEnv, args []string) error {
	fs := newFlagSet("sync")
	format := formatFlag(fs)
	account := fs.String("account", "", "account id")
	media := fs.String("media", "", "only this media id")
	limit := fs.Int("limit", 10, "number of media to scan")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := output.Normalize(*format)
	if err != nil {
		return err
	}

	res, err := env.comments.Sync(ctx, app.SyncQuery{AccountID: *account, MediaID: *media, Limit: *limit})
	if err != nil {
		return err
	}
	return output.Sync(env.out, res, f)
}

func runReply(ctx context.Context, env cmdEnv, args []string) error {
	fs := newFlagSet("reply")
	format := formatFlag(fs)
	commentID := fs.String("comment", "", "comment id to reply to")
	account := fs.String("account", "", "account id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := output.Normalize(*format)
	if err != nil {
		return err
	}
	if *commentID == "" {
		return errors.New("--comment is required")
	}
	message := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if message == "" {
		return domain.ErrEmptyReply
	}

	ack, err := env.comments.Reply(ctx, *commentID, message, *account)
	if err != nil {
		return err
	}
	return output.Reply(env.out, ack, f)
}

func runDeleteAccount(ctx context.Context, env cmdEnv, args []string) error {
	fs := newFlagSet("delete-account")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected exactly one account id")
	}
	id := fs.Arg(0)
	if err := env.accounts.DeleteAccount(ctx, id); err != nil {
		return err
	}
	_, err := fmt.Fprintf(env.out, "deleted account %s\n", id)
	return err
}

func runDeleteComment(ctx context.Context, env cmdEnv, args []string) error {
	fs := newFlagSet("delete-comment")
	account := fs.String("account", "", "account id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected exactly one comment id")
	}
	id := fs.Arg(0)
	if err := env.comments.DeleteComment(ctx, id, *account); err != nil {
		return err
	}
	_, err := fmt.Fprintf(env.out, "deleted comment %s\n", id)
	return err
}
