package handler

var WriteErrorForTest = writeError
