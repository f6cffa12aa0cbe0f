package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/lyritype/internal/config"
	"github.com/verte-zerg/lyritype/internal/lyrics"
	"github.com/verte-zerg/lyritype/internal/model"
	"github.com/verte-zerg/lyritype/internal/stats"
	"github.com/verte-zerg/lyritype/internal/store"
)

func openLibrary() (*store.Store, func(), error) {
	st, err := store.Open(config.DefaultLibraryPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open library: %w", err)
	}
	closeFn := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close library: %v\n", cerr)
		}
	}
	return st, closeFn, nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Parse a track file and store it in the library",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importTitle, "title", "", "track title (default: from file)")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	res, err := lyrics.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	for _, warn := range res.Warnings {
		logErrf("warning: %v\n", warn)
	}
	if importTitle != "" {
		res.Track.Title = importTitle
	}
	return saveTrack(cmd.Context(), cmd.OutOrStdout(), res.Track)
}

func saveTrack(ctx context.Context, out io.Writer, track model.Track) error {
	st, closeFn, err := openLibrary()
	if err != nil {
		return err
	}
	defer closeFn()
	id, err := st.InsertTrack(ctx, track)
	if err != nil {
		return fmt.Errorf("failed to save track: %w", err)
	}
	if _, err := fmt.Fprintf(out, "Imported %q as %s (%d lines)\n", track.Title, id, len(track.Lines)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newTracksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tracks",
		Short: "List library tracks",
		Args:  cobra.NoArgs,
		RunE:  runTracksCmd,
	}
}

func runTracksCmd(cmd *cobra.Command, _ []string) error {
	st, closeFn, err := openLibrary()
	if err != nil {
		return err
	}
	defer closeFn()
	tracks, err := st.ListTracks(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list tracks: %w", err)
	}
	if len(tracks) == 0 {
		logErrln("Library is empty. Add a track with: lyritype import <file>")
		return nil
	}
	if err := stats.RenderTrackList(cmd.OutOrStdout(), tracks); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <track>",
		Short: "Delete a library track",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemoveCmd,
	}
}

func runRemoveCmd(cmd *cobra.Command, args []string) error {
	st, closeFn, err := openLibrary()
	if err != nil {
		return err
	}
	defer closeFn()
	id, err := st.DeleteTrack(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to remove %q: %w", args[0], err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and validate a track file",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheckCmd,
	}
	cmd.Flags().BoolVar(&checkWatch, "watch", false, "re-check whenever the file changes")
	return cmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()
	checkErr := reportCheck(out, path, func() (lyrics.LoadResult, error) { return lyrics.LoadFile(path) })
	if !checkWatch {
		return checkErr
	}
	if checkErr != nil {
		logErrf("%v\n", checkErr)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logErrf("Watching %s (ctrl+c to stop)\n", path)
	return lyrics.Watch(ctx, path, func(res lyrics.LoadResult, err error) {
		if _, werr := fmt.Fprintln(out, "---"); werr != nil {
			logErrf("failed to write output: %v\n", werr)
		}
		if cerr := reportCheck(out, path, func() (lyrics.LoadResult, error) { return res, err }); cerr != nil {
			logErrf("%v\n", cerr)
		}
	})
}

func reportCheck(out io.Writer, path string, load func() (lyrics.LoadResult, error)) error {
	res, err := load()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := stats.RenderTrackInfo(out, res.Track, lyrics.TotalMeaningful(res.Track.Lines), res.Warnings); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
