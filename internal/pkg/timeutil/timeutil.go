package timeutil

import "time"

func NowUnix() int64 {
	return time.Now().Unix()
}

func NowUnixMilli() int64 {
	return time.Now().UnixMilli()
}

func FormatDate(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02")
}
